// Package kitchen holds the kitchen display board: tickets fed from the
// back office, each a group of line items progressing pending → cooking →
// ready.
package kitchen

import (
	"fmt"
	"time"

	"github.com/comanda-pos/terminal/internal/enum"
)

// rankStride separates priority tiers in the composite sort key. Within a
// tier, tickets keep FIFO order by creation time.
const rankStride = int64(1) << 40

// Item is one dish on a ticket.
type Item struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	EstimatedTime int    `json:"estimated_time"` // minutes
}

// Ticket is a kitchen work order tied to a table.
type Ticket struct {
	ID        string    `json:"id"`
	Table     string    `json:"table"`
	Server    string    `json:"server"`
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
	Note      string    `json:"note"`
	Priority  string    `json:"priority"`
}

// NextStatus advances an item status one step. Ready is terminal and
// idempotent; there is no backward transition.
func NextStatus(s string) string {
	switch s {
	case enum.ItemStatusPending:
		return enum.ItemStatusCooking
	case enum.ItemStatusCooking:
		return enum.ItemStatusReady
	default:
		return enum.ItemStatusReady
	}
}

// SortKey is the composite display ordering: high priority sorts before
// normal, FIFO by creation time within a tier.
func (t Ticket) SortKey() int64 {
	return priorityRank(t.Priority)*rankStride + t.CreatedAt.Unix()
}

func priorityRank(p string) int64 {
	if p == enum.PriorityHigh {
		return 0
	}
	return 1
}

// ReadyCount returns how many of the ticket's items are ready, and the
// item count.
func (t Ticket) ReadyCount() (ready, total int) {
	for _, it := range t.Items {
		if it.Status == enum.ItemStatusReady {
			ready++
		}
	}
	return ready, len(t.Items)
}

// ReadySummary is the display aggregate, e.g. "2 de 3 listos".
func (t Ticket) ReadySummary() string {
	ready, total := t.ReadyCount()
	return fmt.Sprintf("%d de %d listos", ready, total)
}

// Elapsed renders how long the ticket has been open, for display.
func (t Ticket) Elapsed(now time.Time) string {
	d := now.Sub(t.CreatedAt)
	if d < time.Minute {
		return "ahora"
	}
	return fmt.Sprintf("%d min", int(d.Minutes()))
}
