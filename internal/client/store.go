package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrWriteInFlight rejects a mutation attempted while another create,
// update, or delete has not completed. Writes are never interleaved;
// the caller retries after the pending one resolves.
var ErrWriteInFlight = errors.New("another change is still being saved")

// Store owns the in-memory ticket collection and mediates all reads and
// writes against the ticket API. Mutations do not patch the collection
// locally: after a successful write the caller re-invokes Load, so the
// collection only ever changes by atomic replacement.
type Store struct {
	api    TicketAPI
	logger *zap.Logger

	mu      sync.Mutex
	tickets []Ticket
	loaded  bool
	loading bool
	writing bool
	lastErr error
}

// NewStore builds a store over the given API.
func NewStore(api TicketAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{api: api, logger: logger}
}

// Load fetches the full collection. On success the collection is
// replaced atomically; on failure the previous collection is kept and
// the error recorded. There is no automatic retry.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	tickets, err := s.api.ListTickets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.logger.Warn("ticket load failed", zap.Error(err))
		return err
	}
	s.tickets = tickets
	s.loaded = true
	s.lastErr = nil
	return nil
}

// Tickets returns a copy of the current collection.
func (s *Store) Tickets() []Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Loaded reports whether at least one Load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error recorded by the most recent operation, nil
// after a success.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Create submits a new ticket and returns the server's message
// verbatim. The collection is not touched; call Load to refresh.
func (s *Store) Create(ctx context.Context, fields TicketFields) (string, error) {
	return s.write(func() (string, error) {
		return s.api.CreateTicket(ctx, fields)
	})
}

// Update replaces every field of an existing ticket.
func (s *Store) Update(ctx context.Context, id string, fields TicketFields) (string, error) {
	return s.write(func() (string, error) {
		return s.api.UpdateTicket(ctx, id, fields)
	})
}

// Delete removes a ticket by id.
func (s *Store) Delete(ctx context.Context, id string) (string, error) {
	return s.write(func() (string, error) {
		return s.api.DeleteTicket(ctx, id)
	})
}

// GetByID fetches a single ticket for edit pre-population. A missing
// id surfaces as a NOT_FOUND error; the caller abandons the edit flow.
func (s *Store) GetByID(ctx context.Context, id string) (*Ticket, error) {
	return s.api.GetTicket(ctx, id)
}

// StatsResult fetches aggregate counts from the API.
func (s *Store) StatsResult(ctx context.Context) (Stats, error) {
	return s.api.TicketStats(ctx)
}

// write runs one mutation under the single-writer gate.
func (s *Store) write(op func() (string, error)) (string, error) {
	s.mu.Lock()
	if s.writing {
		s.mu.Unlock()
		return "", ErrWriteInFlight
	}
	s.writing = true
	s.mu.Unlock()

	message, err := op()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.writing = false
	if err != nil {
		s.lastErr = err
		return "", err
	}
	s.lastErr = nil
	return message, nil
}
