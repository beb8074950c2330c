package client

import (
	"context"
	"strconv"

	"github.com/ticketflow/ticketflow/internal/forms"
	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

// createdBySentinel stands in when the session yields no account; a
// missing session field never blocks submission.
const createdBySentinel = "unknown"

// TicketFormController bridges the validation rules, the store, and
// the create/edit distinction for the ticket form.
type TicketFormController struct {
	store    *Store
	session  Session
	notifier Notifier

	editID string
	state  *forms.State
}

// NewTicketForm opens a blank form in create mode.
func NewTicketForm(store *Store, session Session, notifier Notifier) *TicketFormController {
	return &TicketFormController{
		store:    store,
		session:  session,
		notifier: notifier,
		state: forms.NewState(map[string]string{
			"title":       "",
			"description": "",
			"status":      "open",
			"priority":    "medium",
		}),
	}
}

// NewTicketEditForm opens the form in edit mode, pre-populated from
// the ticket fetched by id. When the ticket is missing the edit flow is
// abandoned: the error is surfaced and returned so the caller can
// navigate back to the list.
func NewTicketEditForm(ctx context.Context, store *Store, session Session, notifier Notifier, id string) (*TicketFormController, error) {
	ticket, err := store.GetByID(ctx, id)
	if err != nil {
		notifier.Notify(err.Error(), NotifyError)
		return nil, err
	}
	return &TicketFormController{
		store:    store,
		session:  session,
		notifier: notifier,
		editID:   ticket.ID,
		state: forms.NewState(map[string]string{
			"title":       ticket.Title,
			"description": ticket.Description,
			"status":      ticket.Status,
			"priority":    ticket.Priority,
		}),
	}, nil
}

// EditMode reports whether the form updates an existing ticket.
func (f *TicketFormController) EditMode() bool {
	return f.editID != ""
}

// SetField records an edit, clearing only that field's error.
func (f *TicketFormController) SetField(name, value string) {
	f.state.SetField(name, value)
}

// Value returns the current value of a field.
func (f *TicketFormController) Value(name string) string {
	return f.state.Value(name)
}

// FieldError returns the validation message for a field, empty when valid.
func (f *TicketFormController) FieldError(name string) string {
	return f.state.FieldError(name)
}

// Submitting reports whether a submission is in flight; the UI
// disables inputs and the submit control while true.
func (f *TicketFormController) Submitting() bool {
	return f.state.Submitting()
}

// CharacterHint derives the "n/max characters" counter for a field.
func (f *TicketFormController) CharacterHint(name string) string {
	max := forms.TitleMaxLen
	if name == "description" {
		max = forms.DescriptionMaxLen
	}
	used := max - f.state.Remaining(name, max)
	return strconv.Itoa(used) + "/" + strconv.Itoa(max) + " characters"
}

// Submit validates and, when clean, sends the create or update. It
// reports true when the caller should navigate back to the list; on
// failure the form stays populated for retry.
func (f *TicketFormController) Submit(ctx context.Context) bool {
	form := forms.TicketForm{
		Title:       f.state.Value("title"),
		Description: f.state.Value("description"),
		Status:      f.state.Value("status"),
		Priority:    f.state.Value("priority"),
	}
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		f.state.SetErrors(fieldErrs)
		f.notifier.Notify("Please fix the errors in the form", NotifyError)
		return false
	}

	f.state.SetSubmitting(true)
	defer f.state.SetSubmitting(false)

	fields := TicketFields{
		Title:       form.Title,
		Description: form.Description,
		Status:      form.Status,
		Priority:    form.Priority,
	}

	var message string
	var err error
	if f.EditMode() {
		message, err = f.store.Update(ctx, f.editID, fields)
	} else {
		fields.CreatedBy = f.createdBy()
		message, err = f.store.Create(ctx, fields)
	}
	if err != nil {
		f.notifier.Notify(err.Error(), NotifyError)
		return false
	}
	f.notifier.Notify(message, NotifySuccess)
	return true
}

func (f *TicketFormController) createdBy() string {
	if f.session == nil {
		return createdBySentinel
	}
	user := f.session.CurrentUser()
	if user == nil || user.Email == "" {
		return createdBySentinel
	}
	return user.Email
}

// IsNotFound reports whether an edit-mode fetch failed because the
// ticket no longer exists, as opposed to a transport failure.
func IsNotFound(err error) bool {
	return apperrors.IsNotFound(err)
}
