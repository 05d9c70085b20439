package kitchen

import (
	"testing"
	"time"

	"github.com/comanda-pos/terminal/internal/enum"
)

func makeTicket(id, priority string, createdAt time.Time, statuses ...string) Ticket {
	t := Ticket{
		ID:        id,
		Table:     "3",
		Server:    "Laura",
		CreatedAt: createdAt,
		Priority:  priority,
	}
	for i, s := range statuses {
		t.Items = append(t.Items, Item{
			ID:     id + "-" + string(rune('a'+i)),
			Name:   "item",
			Status: s,
		})
	}
	return t
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from, want string
	}{
		{enum.ItemStatusPending, enum.ItemStatusCooking},
		{enum.ItemStatusCooking, enum.ItemStatusReady},
		{enum.ItemStatusReady, enum.ItemStatusReady}, // terminal, idempotent
	}
	for _, tc := range tests {
		if got := NextStatus(tc.from); got != tc.want {
			t.Errorf("NextStatus(%s) = %s, want %s", tc.from, got, tc.want)
		}
	}
}

func TestAdvanceItem(t *testing.T) {
	b := NewBoard()
	now := time.Now()
	b.Upsert(makeTicket("t1", enum.PriorityNormal, now, enum.ItemStatusPending))

	ticket, err := b.AdvanceItem("t1", "t1-a")
	if err != nil {
		t.Fatalf("AdvanceItem: %v", err)
	}
	if ticket.Items[0].Status != enum.ItemStatusCooking {
		t.Errorf("status = %s, want cooking", ticket.Items[0].Status)
	}

	ticket, _ = b.AdvanceItem("t1", "t1-a")
	if ticket.Items[0].Status != enum.ItemStatusReady {
		t.Errorf("status = %s, want ready", ticket.Items[0].Status)
	}

	// Advancing a ready item stays ready.
	ticket, _ = b.AdvanceItem("t1", "t1-a")
	if ticket.Items[0].Status != enum.ItemStatusReady {
		t.Errorf("status = %s, want ready (idempotent)", ticket.Items[0].Status)
	}
}

func TestAdvanceItemErrors(t *testing.T) {
	b := NewBoard()
	b.Upsert(makeTicket("t1", enum.PriorityNormal, time.Now(), enum.ItemStatusPending))

	if _, err := b.AdvanceItem("missing", "x"); err != ErrTicketNotFound {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
	if _, err := b.AdvanceItem("t1", "missing"); err != ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMarkAllReady(t *testing.T) {
	b := NewBoard()
	b.Upsert(makeTicket("t1", enum.PriorityNormal, time.Now(),
		enum.ItemStatusPending, enum.ItemStatusCooking, enum.ItemStatusReady))

	ticket, err := b.MarkAllReady("t1")
	if err != nil {
		t.Fatalf("MarkAllReady: %v", err)
	}
	for _, it := range ticket.Items {
		if it.Status != enum.ItemStatusReady {
			t.Errorf("item %s status = %s, want ready", it.ID, it.Status)
		}
	}
	if got := ticket.ReadySummary(); got != "3 de 3 listos" {
		t.Errorf("ReadySummary = %q, want %q", got, "3 de 3 listos")
	}
}

func TestTicketSortOrder(t *testing.T) {
	b := NewBoard()
	t0 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Minute)
	t2 := t0.Add(20 * time.Minute)

	// Inserted out of display order on purpose.
	b.Upsert(makeTicket("normal-old", enum.PriorityNormal, t0, enum.ItemStatusPending))
	b.Upsert(makeTicket("normal-new", enum.PriorityNormal, t2, enum.ItemStatusPending))
	b.Upsert(makeTicket("high-late", enum.PriorityHigh, t1, enum.ItemStatusPending))

	got := b.Tickets()
	want := []string{"high-late", "normal-old", "normal-new"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestTicketSortStable(t *testing.T) {
	b := NewBoard()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Same priority and same second: arrival order must hold.
	b.Upsert(makeTicket("first", enum.PriorityNormal, at, enum.ItemStatusPending))
	b.Upsert(makeTicket("second", enum.PriorityNormal, at, enum.ItemStatusPending))

	got := b.Tickets()
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("tie not broken by arrival order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestReadyCount(t *testing.T) {
	ticket := makeTicket("t1", enum.PriorityNormal, time.Now(),
		enum.ItemStatusReady, enum.ItemStatusCooking, enum.ItemStatusReady)

	ready, total := ticket.ReadyCount()
	if ready != 2 || total != 3 {
		t.Errorf("ReadyCount = %d/%d, want 2/3", ready, total)
	}
}

func TestElapsed(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ticket := makeTicket("t1", enum.PriorityNormal, at, enum.ItemStatusPending)

	if got := ticket.Elapsed(at.Add(30 * time.Second)); got != "ahora" {
		t.Errorf("Elapsed = %q, want %q", got, "ahora")
	}
	if got := ticket.Elapsed(at.Add(7 * time.Minute)); got != "7 min" {
		t.Errorf("Elapsed = %q, want %q", got, "7 min")
	}
}

func TestRemove(t *testing.T) {
	b := NewBoard()
	b.Upsert(makeTicket("t1", enum.PriorityNormal, time.Now(), enum.ItemStatusPending))
	b.Remove("t1")

	if got := len(b.Tickets()); got != 0 {
		t.Errorf("expected empty board, got %d tickets", got)
	}
	if _, err := b.Get("t1"); err != ErrTicketNotFound {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
}
