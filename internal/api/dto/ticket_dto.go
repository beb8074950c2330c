package dto

import (
	"time"

	"github.com/ticketflow/ticketflow/internal/domain"
)

// TicketPayload is the wire form of a ticket. Field names are the
// camelCase keys the web client renders directly.
type TicketPayload struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedBy   string                `json:"createdBy"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// TicketRequest carries the editable fields for create and update.
// Updates replace every field; there is no partial patch.
type TicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"createdBy"`
}

// TicketListResponse wraps the full collection.
type TicketListResponse struct {
	Tickets []TicketPayload `json:"tickets"`
}

// TicketResponse wraps a single ticket.
type TicketResponse struct {
	Ticket TicketPayload `json:"ticket"`
}

// MessageResponse carries a user-facing success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatsResponse wraps aggregate counts.
type StatsResponse struct {
	Stats domain.TicketStats `json:"stats"`
}

// FromTicket converts a domain ticket to its wire form.
func FromTicket(ticket *domain.Ticket) TicketPayload {
	return TicketPayload{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedBy:   ticket.CreatedBy,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
