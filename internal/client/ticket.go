// Package client implements the ticket collection and form state
// engine that sits between a front end and the ticket API: the ticket
// store, the filter derivation, form controllers with validation, and
// the delete-confirmation workflow.
package client

// Ticket is a ticket as received from the API. CreatedAt stays the raw
// wire string; sorting parses it per comparison so a malformed value
// ranks oldest instead of breaking the view.
type Ticket struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
}

// TicketFields carries the submittable fields for create and update.
type TicketFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// Stats mirrors the API's aggregate counts.
type Stats struct {
	Total          int `json:"total"`
	Open           int `json:"open"`
	InProgress     int `json:"inProgress"`
	Closed         int `json:"closed"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
}

// User is the session account consumed from the auth collaborator.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
