package client

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

// fakeAPI scripts the collaborator behind the store.
type fakeAPI struct {
	tickets    []Ticket
	listErr    error
	writeErr   error
	message    string
	getTicket  *Ticket
	getErr     error
	stats      Stats
	statsErr   error
	listCalls  int
	writeCalls int

	// blockWrite lets a test hold a write open to exercise the gate;
	// writeStarted signals that the write reached the API.
	blockWrite   chan struct{}
	writeStarted chan struct{}
}

func (f *fakeAPI) ListTickets(ctx context.Context) ([]Ticket, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out, nil
}

func (f *fakeAPI) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getTicket, nil
}

func (f *fakeAPI) write() (string, error) {
	f.writeCalls++
	if f.writeStarted != nil {
		f.writeStarted <- struct{}{}
	}
	if f.blockWrite != nil {
		<-f.blockWrite
	}
	if f.writeErr != nil {
		return "", f.writeErr
	}
	return f.message, nil
}

func (f *fakeAPI) CreateTicket(ctx context.Context, fields TicketFields) (string, error) {
	return f.write()
}

func (f *fakeAPI) UpdateTicket(ctx context.Context, id string, fields TicketFields) (string, error) {
	return f.write()
}

func (f *fakeAPI) DeleteTicket(ctx context.Context, id string) (string, error) {
	return f.write()
}

func (f *fakeAPI) TicketStats(ctx context.Context) (Stats, error) {
	return f.stats, f.statsErr
}

func TestStoreLoadReplacesCollection(t *testing.T) {
	api := &fakeAPI{tickets: []Ticket{{ID: "1"}, {ID: "2"}}}
	store := NewStore(api, nil)
	ctx := context.Background()

	if store.Loaded() {
		t.Fatal("store must start unloaded")
	}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Loaded() || store.Err() != nil {
		t.Fatal("load success must set loaded and clear the error")
	}
	if got := store.Tickets(); len(got) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(got))
	}

	api.tickets = []Ticket{{ID: "3"}}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := store.Tickets()
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("reload must replace, not merge: %v", got)
	}
}

func TestStoreLoadFailureKeepsPreviousCollection(t *testing.T) {
	api := &fakeAPI{tickets: []Ticket{{ID: "1"}}}
	store := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	api.listErr = errors.New("connection refused")
	if err := store.Load(ctx); err == nil {
		t.Fatal("expected load error")
	}
	if got := store.Tickets(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("failed load must keep the previous collection, got %v", got)
	}
	if store.Err() == nil {
		t.Fatal("failed load must record the error")
	}
}

func TestStoreCreateReturnsServerMessageVerbatim(t *testing.T) {
	api := &fakeAPI{message: "Ticket created successfully!"}
	store := NewStore(api, nil)

	msg, err := store.Create(context.Background(), TicketFields{Title: "t", Status: "open"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg != "Ticket created successfully!" {
		t.Fatalf("message must pass through verbatim, got %q", msg)
	}
	if api.listCalls != 0 {
		t.Fatal("a write must not refresh the collection on its own")
	}
}

func TestStoreWriteDoesNotPatchCollection(t *testing.T) {
	api := &fakeAPI{tickets: []Ticket{{ID: "1"}}, message: "Ticket created successfully!"}
	store := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := store.Create(ctx, TicketFields{Title: "t"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// The new ticket only appears after an explicit reload.
	if got := store.Tickets(); len(got) != 1 {
		t.Fatalf("collection must be untouched by the write, got %d tickets", len(got))
	}

	// A reload that fails keeps the pre-mutation view.
	api.listErr = errors.New("boom")
	if err := store.Load(ctx); err == nil {
		t.Fatal("expected reload failure")
	}
	if got := store.Tickets(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("failed refresh must keep the stale view, got %v", got)
	}
}

func TestStoreRejectsOverlappingWrites(t *testing.T) {
	api := &fakeAPI{
		message:      "Ticket updated successfully!",
		blockWrite:   make(chan struct{}),
		writeStarted: make(chan struct{}, 1),
	}
	store := NewStore(api, nil)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := store.Update(ctx, "1", TicketFields{Title: "t"})
		firstDone <- err
	}()

	// Wait until the first write is inside the API call.
	<-api.writeStarted

	if _, err := store.Delete(ctx, "2"); !errors.Is(err, ErrWriteInFlight) {
		t.Fatalf("expected ErrWriteInFlight, got %v", err)
	}

	close(api.blockWrite)
	if err := <-firstDone; err != nil {
		t.Fatalf("first write should succeed: %v", err)
	}

	// The gate reopens once the pending write resolves.
	api.blockWrite = nil
	if _, err := store.Delete(ctx, "2"); err != nil {
		t.Fatalf("retry after completion should succeed: %v", err)
	}
}

func TestStoreWriteErrorSurfacesAndClearsGate(t *testing.T) {
	api := &fakeAPI{writeErr: apperrors.NewNotFound("Ticket", nil)}
	store := NewStore(api, nil)
	ctx := context.Background()

	if _, err := store.Delete(ctx, "missing"); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	api.writeErr = nil
	api.message = "Ticket deleted successfully!"
	if _, err := store.Delete(ctx, "present"); err != nil {
		t.Fatalf("gate must reopen after a failed write: %v", err)
	}
}

func TestStoreStatsPassThrough(t *testing.T) {
	api := &fakeAPI{stats: Stats{Total: 5, Open: 2, InProgress: 1, Closed: 2, HighPriority: 1, MediumPriority: 3, LowPriority: 1}}
	store := NewStore(api, nil)

	stats, err := store.StatsResult(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Open+stats.InProgress+stats.Closed != stats.Total {
		t.Fatalf("status counts must sum to total: %+v", stats)
	}
	if stats.HighPriority+stats.MediumPriority+stats.LowPriority != stats.Total {
		t.Fatalf("priority counts must sum to total: %+v", stats)
	}
}
