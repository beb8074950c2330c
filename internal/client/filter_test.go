package client

import (
	"reflect"
	"testing"
)

func sampleTickets() []Ticket {
	return []Ticket{
		{ID: "1", Title: "Printer offline", Description: "3rd floor printer", Status: "open", CreatedAt: "2026-01-02T10:00:00Z"},
		{ID: "2", Title: "VPN drops", Description: "Drops every hour", Status: "in_progress", CreatedAt: "2026-01-03T10:00:00Z"},
		{ID: "3", Title: "New laptop", Description: "Replacement for printer admin", Status: "closed", CreatedAt: "2026-01-01T10:00:00Z"},
	}
}

func idsOf(tickets []Ticket) []string {
	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	return ids
}

func TestFilterAllEmptySearchSortsNewestFirst(t *testing.T) {
	got := Filter(sampleTickets(), Criteria{Status: StatusAll})
	if want := []string{"2", "1", "3"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(sampleTickets(), Criteria{Status: "open"})
	if want := []string{"1"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterSearchIsCaseInsensitiveAcrossTitleAndDescription(t *testing.T) {
	got := Filter(sampleTickets(), Criteria{Status: StatusAll, Search: "PRINTER"})
	// "printer" appears in ticket 1's title and ticket 3's description.
	if want := []string{"1", "3"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterStatusAndSearchCompose(t *testing.T) {
	got := Filter(sampleTickets(), Criteria{Status: "closed", Search: "printer"})
	if want := []string{"3"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterNoMatchesReturnsEmpty(t *testing.T) {
	got := Filter(sampleTickets(), Criteria{Status: StatusAll, Search: "zzzzz"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", idsOf(got))
	}
}

func TestFilterTiesKeepInputOrder(t *testing.T) {
	tickets := []Ticket{
		{ID: "a", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "b", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "c", CreatedAt: "2026-01-01T00:00:00Z"},
	}
	got := Filter(tickets, Criteria{Status: StatusAll})
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("equal timestamps must keep input order, got %v", idsOf(got))
	}
}

func TestFilterUnparseableCreatedAtRanksOldest(t *testing.T) {
	tickets := []Ticket{
		{ID: "bad", CreatedAt: "not-a-timestamp"},
		{ID: "old", CreatedAt: "2020-01-01T00:00:00Z"},
		{ID: "new", CreatedAt: "2026-01-01T00:00:00Z"},
	}
	got := Filter(tickets, Criteria{Status: StatusAll})
	if want := []string{"new", "old", "bad"}; !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tickets := sampleTickets()
	before := idsOf(tickets)
	_ = Filter(tickets, Criteria{Status: StatusAll})
	if !reflect.DeepEqual(idsOf(tickets), before) {
		t.Fatalf("input slice was reordered: %v", idsOf(tickets))
	}
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(sampleTickets())
	if counts[StatusAll] != 3 {
		t.Fatalf("expected 3 total, got %d", counts[StatusAll])
	}
	if counts["open"] != 1 || counts["in_progress"] != 1 || counts["closed"] != 1 {
		t.Fatalf("unexpected per-status counts: %v", counts)
	}
}
