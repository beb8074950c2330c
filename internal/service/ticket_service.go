package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ticketflow/ticketflow/internal/domain"
	"github.com/ticketflow/ticketflow/internal/events"
	"github.com/ticketflow/ticketflow/internal/forms"
	"github.com/ticketflow/ticketflow/internal/persistence"
	"github.com/ticketflow/ticketflow/internal/repository"
	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

const statsCacheKey = "ticketflow:stats"

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      *persistence.Redis
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketInput describes the editable fields of a ticket. Create and
// update both take the full set; updates replace every field.
type TicketInput struct {
	Title       string
	Description string
	Status      domain.TicketStatus
	Priority    domain.TicketPriority
	CreatedBy   string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates the input and persists a new ticket.
func (s *TicketService) Create(ctx context.Context, input TicketInput) (*domain.Ticket, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedBy:   input.CreatedBy,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.CreatedBy == "" {
		ticket.CreatedBy = "unknown"
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:     ticket.Title,
			Status:    ticket.Status,
			Priority:  ticket.Priority,
			CreatedBy: ticket.CreatedBy,
		},
	})
	return ticket, nil
}

// Update replaces every editable field of an existing ticket.
func (s *TicketService) Update(ctx context.Context, id string, input TicketInput) (*domain.Ticket, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	oldStatus := ticket.Status
	oldPriority := ticket.Priority
	ticket.Title = strings.TrimSpace(input.Title)
	ticket.Description = input.Description
	ticket.Status = input.Status
	ticket.Priority = input.Priority
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapTicketErr(err)
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			OldStatus:   oldStatus,
			NewStatus:   ticket.Status,
			OldPriority: oldPriority,
			NewPriority: ticket.Priority,
		},
	})
	return ticket, nil
}

// Delete removes a ticket by id.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return mapTicketErr(err)
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return mapTicketErr(err)
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Payload:  events.TicketDeletedPayload{Title: ticket.Title},
	})
	return nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	return ticket, nil
}

// List returns the full collection, newest first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// Stats returns aggregate counts, served from the Redis cache when
// fresh. Cache failures degrade to the database, never to an error.
func (s *TicketService) Stats(ctx context.Context) (domain.TicketStats, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return domain.TicketStats{}, err
	}
	s.storeStats(ctx, stats)
	return stats, nil
}

func (s *TicketService) cachedStats(ctx context.Context) (domain.TicketStats, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return domain.TicketStats{}, false
	}
	raw, err := s.cache.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return domain.TicketStats{}, false
	}
	var stats domain.TicketStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Debug("discarding malformed stats cache entry", zap.Error(err))
		return domain.TicketStats{}, false
	}
	return stats, true
}

func (s *TicketService) storeStats(ctx context.Context, stats domain.TicketStats) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	ttl := s.cacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := s.cache.Client.Set(ctx, statsCacheKey, raw, ttl).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *TicketService) invalidateStats(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateInput(input TicketInput) error {
	form := forms.TicketForm{
		Title:       input.Title,
		Description: input.Description,
		Status:      string(input.Status),
		Priority:    string(input.Priority),
	}
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		details := make(map[string]any, len(fieldErrs))
		for field, msg := range fieldErrs {
			details[field] = msg
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"priority": "Priority must be one of: low, medium, high",
		})
	}
	return nil
}

func mapTicketErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("Ticket", nil)
	}
	return err
}
