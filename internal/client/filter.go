package client

import (
	"sort"
	"strings"
	"time"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Criteria is the transient filter/search state chosen in the UI.
type Criteria struct {
	Status string
	Search string
}

// Filter derives the visible ticket list from the raw collection and
// the current criteria. It is pure: a fresh slice is returned on every
// call and the input is never reordered. Callers re-run it whenever the
// collection, status filter, or search term changes.
func Filter(tickets []Ticket, criteria Criteria) []Ticket {
	filtered := make([]Ticket, 0, len(tickets))
	term := strings.ToLower(criteria.Search)
	for _, ticket := range tickets {
		if criteria.Status != "" && criteria.Status != StatusAll && ticket.Status != criteria.Status {
			continue
		}
		if term != "" && !matchesTerm(ticket, term) {
			continue
		}
		filtered = append(filtered, ticket)
	}

	// Newest first. Ties keep input order; tickets whose createdAt does
	// not parse rank oldest rather than being dropped.
	type keyed struct {
		ticket Ticket
		at     time.Time
		ok     bool
	}
	items := make([]keyed, len(filtered))
	for i, ticket := range filtered {
		items[i].ticket = ticket
		items[i].at, items[i].ok = parseCreatedAt(ticket.CreatedAt)
	}
	sort.SliceStable(items, func(i, j int) bool {
		switch {
		case items[i].ok && items[j].ok:
			return items[i].at.After(items[j].at)
		case items[i].ok:
			return true
		default:
			return false
		}
	})
	for i, item := range items {
		filtered[i] = item.ticket
	}
	return filtered
}

func matchesTerm(ticket Ticket, term string) bool {
	return strings.Contains(strings.ToLower(ticket.Title), term) ||
		strings.Contains(strings.ToLower(ticket.Description), term)
}

func parseCreatedAt(value string) (time.Time, bool) {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// StatusCounts tallies tickets per status for the filter buttons.
func StatusCounts(tickets []Ticket) map[string]int {
	counts := map[string]int{StatusAll: len(tickets)}
	for _, ticket := range tickets {
		counts[ticket.Status]++
	}
	return counts
}
