// Command ticketflow is a terminal front end for the ticket API. It
// drives the same engine a graphical client would: the ticket store,
// filter derivation, form validation, and the delete confirmation
// workflow.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ticketflow/ticketflow/internal/client"
	"github.com/ticketflow/ticketflow/internal/config"
	"github.com/ticketflow/ticketflow/internal/observability"
)

const usage = `usage: ticketflow [flags] <command>

commands:
  signup        create an account (--name, --email, --password)
  login         authenticate and print a token for TICKETFLOW_TOKEN
  list          list tickets (--status, --search)
  create        create a ticket (--title, --description, --status, --priority)
  edit <id>     update a ticket (any of --title, --description, --status, --priority)
  delete <id>   delete a ticket after confirmation (--yes to skip the prompt)
  stats         show aggregate ticket counts
`

type printNotifier struct{}

func (printNotifier) Notify(message, kind string) {
	fmt.Printf("[%s] %s\n", kind, message)
}

func main() {
	flags := pflag.NewFlagSet("ticketflow", pflag.ExitOnError)
	apiURL := flags.String("api", "", "ticket API base URL (defaults to TICKETFLOW_API_URL)")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	name := flags.String("name", "", "account name (signup)")
	status := flags.String("status", client.StatusAll, "status filter: all, open, in_progress, closed")
	search := flags.String("search", "", "search term matched against title and description")
	title := flags.String("title", "", "ticket title")
	description := flags.String("description", "", "ticket description")
	priority := flags.String("priority", "", "ticket priority: low, medium, high")
	ticketStatus := flags.String("ticket-status", "", "ticket status for create/edit")
	yes := flags.BoolP("yes", "y", false, "skip the delete confirmation prompt")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "error"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	baseURL := cfg.Client.APIBaseURL
	if *apiURL != "" {
		baseURL = *apiURL
	}

	api := client.NewClient(baseURL, cfg.Client.RequestTimeout())
	session := client.NewAPISession(api)
	store := client.NewStore(api, logger)
	notifier := printNotifier{}
	ctx := context.Background()

	command := flags.Arg(0)
	switch command {
	case "signup":
		runSignup(ctx, session, notifier, *name, *email, *password)
		return
	case "login":
		runLogin(ctx, session, notifier, *email, *password)
		return
	}

	// Remaining commands need a session, the CLI's stand-in for the web
	// app's routing guard.
	if token := os.Getenv("TICKETFLOW_TOKEN"); token != "" {
		session.Resume(token)
	} else if *email != "" && *password != "" {
		if _, err := session.Login(ctx, *email, *password); err != nil {
			notifier.Notify(err.Error(), client.NotifyError)
			os.Exit(1)
		}
	}
	if !session.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, "not logged in: set TICKETFLOW_TOKEN or pass --email and --password")
		os.Exit(1)
	}

	switch command {
	case "list":
		runList(ctx, store, notifier, client.Criteria{Status: *status, Search: *search})
	case "create":
		runCreate(ctx, store, session, notifier, *title, *description, *ticketStatus, *priority)
	case "edit":
		requireArg(flags, "edit")
		runEdit(ctx, store, session, notifier, flags.Arg(1), map[string]string{
			"title":       *title,
			"description": *description,
			"status":      *ticketStatus,
			"priority":    *priority,
		})
	case "delete":
		requireArg(flags, "delete")
		runDelete(ctx, store, notifier, flags.Arg(1), *yes)
	case "stats":
		runStats(ctx, store, notifier)
	default:
		flags.Usage()
		os.Exit(2)
	}
}

func requireArg(flags *pflag.FlagSet, command string) {
	if flags.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "%s requires a ticket id\n", command)
		os.Exit(2)
	}
}

func runSignup(ctx context.Context, session *client.APISession, notifier printNotifier, name, email, password string) {
	user, err := session.Signup(ctx, name, email, password)
	if err != nil {
		notifier.Notify(err.Error(), client.NotifyError)
		os.Exit(1)
	}
	notifier.Notify("Account created successfully! Welcome to TicketFlow.", client.NotifySuccess)
	fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
}

func runLogin(ctx context.Context, session *client.APISession, notifier printNotifier, email, password string) {
	user, err := session.Login(ctx, email, password)
	if err != nil {
		notifier.Notify(err.Error(), client.NotifyError)
		os.Exit(1)
	}
	notifier.Notify("Login successful! Welcome back.", client.NotifySuccess)
	fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
}

func runList(ctx context.Context, store *client.Store, notifier printNotifier, criteria client.Criteria) {
	if err := store.Load(ctx); err != nil {
		notifier.Notify("Failed to load tickets. Please try again.", client.NotifyError)
		os.Exit(1)
	}
	tickets := store.Tickets()
	counts := client.StatusCounts(tickets)
	fmt.Printf("All (%d)  Open (%d)  In Progress (%d)  Closed (%d)\n\n",
		counts[client.StatusAll], counts["open"], counts["in_progress"], counts["closed"])

	visible := client.Filter(tickets, criteria)
	if len(visible) == 0 {
		fmt.Println("No tickets found")
		return
	}
	for _, ticket := range visible {
		description := ticket.Description
		if description == "" {
			description = "No description provided"
		}
		fmt.Printf("%s  [%s/%s]  %s\n    %s\n    %s by %s\n",
			ticket.ID, ticket.Status, ticket.Priority, ticket.Title,
			description, ticket.CreatedAt, ticket.CreatedBy)
	}
}

func runCreate(ctx context.Context, store *client.Store, session client.Session, notifier printNotifier, title, description, status, priority string) {
	form := client.NewTicketForm(store, session, notifier)
	form.SetField("title", title)
	form.SetField("description", description)
	if status != "" {
		form.SetField("status", status)
	}
	if priority != "" {
		form.SetField("priority", priority)
	}
	if !form.Submit(ctx) {
		reportFieldErrors(form)
		os.Exit(1)
	}
}

func runEdit(ctx context.Context, store *client.Store, session client.Session, notifier printNotifier, id string, overrides map[string]string) {
	form, err := client.NewTicketEditForm(ctx, store, session, notifier, id)
	if err != nil {
		os.Exit(1)
	}
	for field, value := range overrides {
		if value != "" {
			form.SetField(field, value)
		}
	}
	if !form.Submit(ctx) {
		reportFieldErrors(form)
		os.Exit(1)
	}
}

func reportFieldErrors(form *client.TicketFormController) {
	for _, field := range []string{"title", "description", "status", "priority"} {
		if msg := form.FieldError(field); msg != "" {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
	}
}

func runDelete(ctx context.Context, store *client.Store, notifier printNotifier, id string, skipPrompt bool) {
	confirm := client.NewConfirmation()
	confirm.Request(id)

	if !skipPrompt {
		fmt.Print("Are you sure you want to delete this ticket? This action cannot be undone. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			confirm.Cancel()
			fmt.Println("cancelled")
			return
		}
	}

	ticketID, ok := confirm.Confirm()
	if !ok {
		return
	}
	_, err := store.Delete(ctx, ticketID)
	confirm.Complete()
	if err != nil {
		notifier.Notify(err.Error(), client.NotifyError)
		os.Exit(1)
	}
	notifier.Notify("Ticket deleted successfully!", client.NotifySuccess)
}

func runStats(ctx context.Context, store *client.Store, notifier printNotifier) {
	stats, err := store.StatsResult(ctx)
	if err != nil {
		notifier.Notify("Failed to load statistics. Please refresh the page.", client.NotifyError)
		os.Exit(1)
	}
	fmt.Printf("Total Tickets:  %d\n", stats.Total)
	fmt.Printf("Open:           %d\n", stats.Open)
	fmt.Printf("In Progress:    %d\n", stats.InProgress)
	fmt.Printf("Closed:         %d\n", stats.Closed)
	fmt.Printf("High Priority:  %d\n", stats.HighPriority)
	fmt.Printf("Medium:         %d\n", stats.MediumPriority)
	fmt.Printf("Low:            %d\n", stats.LowPriority)
}
