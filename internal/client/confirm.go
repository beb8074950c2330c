package client

// ConfirmState enumerates the delete-confirmation states.
type ConfirmState int

const (
	ConfirmIdle ConfirmState = iota
	ConfirmPending
	ConfirmDeleting
)

// Confirmation is the single-slot workflow gating destructive deletes.
// At most one ticket occupies the slot: requesting confirmation for a
// second ticket replaces the first, it never stacks.
type Confirmation struct {
	state    ConfirmState
	ticketID string
}

// NewConfirmation starts in Idle.
func NewConfirmation() *Confirmation {
	return &Confirmation{}
}

// Request moves the slot to PendingConfirm for the given ticket,
// replacing any ticket already pending. A request is ignored while a
// delete is executing.
func (c *Confirmation) Request(ticketID string) {
	if c.state == ConfirmDeleting {
		return
	}
	c.state = ConfirmPending
	c.ticketID = ticketID
}

// Cancel returns to Idle from PendingConfirm regardless of which
// ticket was pending.
func (c *Confirmation) Cancel() {
	if c.state == ConfirmDeleting {
		return
	}
	c.state = ConfirmIdle
	c.ticketID = ""
}

// Confirm moves PendingConfirm to Deleting and yields the ticket id to
// delete. It reports false when nothing was pending.
func (c *Confirmation) Confirm() (string, bool) {
	if c.state != ConfirmPending {
		return "", false
	}
	c.state = ConfirmDeleting
	return c.ticketID, true
}

// Complete returns to Idle once the delete finishes, success and
// failure alike.
func (c *Confirmation) Complete() {
	c.state = ConfirmIdle
	c.ticketID = ""
}

// State returns the current state.
func (c *Confirmation) State() ConfirmState {
	return c.state
}

// PendingID returns the ticket occupying the slot, empty when Idle.
func (c *Confirmation) PendingID() string {
	return c.ticketID
}
