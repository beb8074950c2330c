package client

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

type recordingNotifier struct {
	messages []string
	kinds    []string
}

func (n *recordingNotifier) Notify(message, kind string) {
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) last() (string, string) {
	if len(n.messages) == 0 {
		return "", ""
	}
	return n.messages[len(n.messages)-1], n.kinds[len(n.kinds)-1]
}

type stubSession struct {
	user *User
}

func (s *stubSession) CurrentUser() *User     { return s.user }
func (s *stubSession) IsAuthenticated() bool  { return s.user != nil }
func (s *stubSession) Logout()                { s.user = nil }
func (s *stubSession) Login(ctx context.Context, email, password string) (*User, error) {
	return s.user, nil
}
func (s *stubSession) Signup(ctx context.Context, name, email, password string) (*User, error) {
	return s.user, nil
}

func TestTicketFormDefaults(t *testing.T) {
	form := NewTicketForm(NewStore(&fakeAPI{}, nil), &stubSession{}, &recordingNotifier{})
	if form.EditMode() {
		t.Fatal("a blank form is in create mode")
	}
	if form.Value("status") != "open" || form.Value("priority") != "medium" {
		t.Fatalf("expected open/medium defaults, got %q/%q", form.Value("status"), form.Value("priority"))
	}
}

func TestTicketFormInvalidSubmitSkipsNetwork(t *testing.T) {
	api := &fakeAPI{message: "Ticket created successfully!"}
	notifier := &recordingNotifier{}
	form := NewTicketForm(NewStore(api, nil), &stubSession{}, notifier)

	if form.Submit(context.Background()) {
		t.Fatal("empty title must block submission")
	}
	if api.writeCalls != 0 {
		t.Fatal("validation failure must not reach the API")
	}
	if form.FieldError("title") != "Title is required" {
		t.Fatalf("expected title error, got %q", form.FieldError("title"))
	}
	msg, kind := notifier.last()
	if msg != "Please fix the errors in the form" || kind != NotifyError {
		t.Fatalf("expected form-error toast, got %q/%q", msg, kind)
	}
}

func TestTicketFormSubmitCreateUsesSessionEmail(t *testing.T) {
	api := &fakeAPI{message: "Ticket created successfully!"}
	notifier := &recordingNotifier{}
	session := &stubSession{user: &User{Email: "ada@example.com"}}
	form := NewTicketForm(NewStore(api, nil), session, notifier)

	form.SetField("title", "Printer offline")
	if !form.Submit(context.Background()) {
		t.Fatalf("submit should succeed, errors: %q", form.FieldError("title"))
	}
	msg, kind := notifier.last()
	if msg != "Ticket created successfully!" || kind != NotifySuccess {
		t.Fatalf("server message must surface verbatim, got %q/%q", msg, kind)
	}
	if form.Submitting() {
		t.Fatal("submitting flag must clear after completion")
	}
}

func TestTicketFormCreatedBySentinelWithoutSession(t *testing.T) {
	form := NewTicketForm(NewStore(&fakeAPI{}, nil), nil, &recordingNotifier{})
	if got := form.createdBy(); got != "unknown" {
		t.Fatalf("missing session must yield the sentinel, got %q", got)
	}

	form = NewTicketForm(NewStore(&fakeAPI{}, nil), &stubSession{}, &recordingNotifier{})
	if got := form.createdBy(); got != "unknown" {
		t.Fatalf("logged-out session must yield the sentinel, got %q", got)
	}
}

func TestTicketFormSubmitFailureKeepsValues(t *testing.T) {
	api := &fakeAPI{writeErr: apperrors.NewNetworkError(nil)}
	notifier := &recordingNotifier{}
	form := NewTicketForm(NewStore(api, nil), &stubSession{}, notifier)

	form.SetField("title", "VPN drops")
	if form.Submit(context.Background()) {
		t.Fatal("submit must report failure")
	}
	if form.Value("title") != "VPN drops" {
		t.Fatal("a failed submit must keep the form populated for retry")
	}
	msg, kind := notifier.last()
	if kind != NotifyError || !strings.Contains(msg, "Unable to reach the server") {
		t.Fatalf("expected network-error toast, got %q/%q", msg, kind)
	}
}

func TestTicketEditFormPrePopulates(t *testing.T) {
	api := &fakeAPI{getTicket: &Ticket{
		ID: "42", Title: "New laptop", Description: "Replacement",
		Status: "in_progress", Priority: "high",
	}}
	form, err := NewTicketEditForm(context.Background(), NewStore(api, nil), &stubSession{}, &recordingNotifier{}, "42")
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	if !form.EditMode() {
		t.Fatal("expected edit mode")
	}
	if form.Value("title") != "New laptop" || form.Value("status") != "in_progress" || form.Value("priority") != "high" {
		t.Fatalf("fields not pre-populated: title=%q status=%q priority=%q",
			form.Value("title"), form.Value("status"), form.Value("priority"))
	}
}

func TestTicketEditFormAbandonsOnMissingTicket(t *testing.T) {
	api := &fakeAPI{getErr: apperrors.NewNotFound("Ticket", nil)}
	notifier := &recordingNotifier{}
	form, err := NewTicketEditForm(context.Background(), NewStore(api, nil), &stubSession{}, notifier, "gone")
	if err == nil || form != nil {
		t.Fatal("a missing ticket must abandon the edit flow")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, kind := notifier.last(); kind != NotifyError {
		t.Fatal("the failure must surface to the notifier")
	}
}

func TestTicketFormCharacterHint(t *testing.T) {
	form := NewTicketForm(NewStore(&fakeAPI{}, nil), &stubSession{}, &recordingNotifier{})
	form.SetField("title", "hello")
	if got := form.CharacterHint("title"); got != "5/200 characters" {
		t.Fatalf("expected 5/200 characters, got %q", got)
	}
	form.SetField("description", strings.Repeat("d", 10))
	if got := form.CharacterHint("description"); got != "10/1000 characters" {
		t.Fatalf("expected 10/1000 characters, got %q", got)
	}
}
