package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketflow/ticketflow/internal/api/dto"
	"github.com/ticketflow/ticketflow/internal/domain"
	"github.com/ticketflow/ticketflow/internal/service"
	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketPayload, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return c.JSON(dto.TicketListResponse{Tickets: items})
}

// Stats GET /tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{Stats: stats})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketResponse{Ticket: dto.FromTicket(ticket)})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.Create(c.Context(), ticketInput(req)); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Ticket created successfully!"})
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.Update(c.Context(), c.Params("id"), ticketInput(req)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket updated successfully!"})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket deleted successfully!"})
}

func ticketInput(req dto.TicketRequest) service.TicketInput {
	return service.TicketInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TicketStatus(req.Status),
		Priority:    domain.TicketPriority(req.Priority),
		CreatedBy:   req.CreatedBy,
	}
}
