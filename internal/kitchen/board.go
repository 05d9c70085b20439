package kitchen

import (
	"errors"
	"sort"
	"sync"

	"github.com/comanda-pos/terminal/internal/enum"
)

var (
	ErrTicketNotFound = errors.New("kitchen: ticket not found")
	ErrItemNotFound   = errors.New("kitchen: item not found")
)

// Board holds the tickets currently in the kitchen. Tickets are created
// by the feed (or tests); the board only mutates item statuses.
type Board struct {
	mu      sync.RWMutex
	tickets map[string]*Ticket
	arrival []string // insertion order, keeps the sort stable
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{tickets: make(map[string]*Ticket)}
}

// Upsert adds a ticket or replaces it wholesale if the id is known.
func (b *Board) Upsert(t Ticket) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tickets[t.ID]; !ok {
		b.arrival = append(b.arrival, t.ID)
	}
	copied := t
	copied.Items = append([]Item(nil), t.Items...)
	b.tickets[t.ID] = &copied
}

// Remove drops a ticket (e.g. bumped from the display once served).
func (b *Board) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.tickets, id)
	for i, tid := range b.arrival {
		if tid == id {
			b.arrival = append(b.arrival[:i], b.arrival[i+1:]...)
			break
		}
	}
}

// Tickets returns the current tickets in display order: priority tier
// first, FIFO within the tier, arrival order breaking exact ties.
func (b *Board) Tickets() []Ticket {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Ticket, 0, len(b.tickets))
	for _, id := range b.arrival {
		t := b.tickets[id]
		copied := *t
		copied.Items = append([]Item(nil), t.Items...)
		out = append(out, copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// Get returns a copy of one ticket.
func (b *Board) Get(id string) (Ticket, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.tickets[id]
	if !ok {
		return Ticket{}, ErrTicketNotFound
	}
	copied := *t
	copied.Items = append([]Item(nil), t.Items...)
	return copied, nil
}

// AdvanceItem moves one item forward a step (pending → cooking → ready).
// Advancing a ready item is a no-op.
func (b *Board) AdvanceItem(ticketID, itemID string) (Ticket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tickets[ticketID]
	if !ok {
		return Ticket{}, ErrTicketNotFound
	}
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			t.Items[i].Status = NextStatus(t.Items[i].Status)
			copied := *t
			copied.Items = append([]Item(nil), t.Items...)
			return copied, nil
		}
	}
	return Ticket{}, ErrItemNotFound
}

// MarkAllReady forces every item on the ticket to ready, regardless of
// current state.
func (b *Board) MarkAllReady(ticketID string) (Ticket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tickets[ticketID]
	if !ok {
		return Ticket{}, ErrTicketNotFound
	}
	for i := range t.Items {
		t.Items[i].Status = enum.ItemStatusReady
	}
	copied := *t
	copied.Items = append([]Item(nil), t.Items...)
	return copied, nil
}
