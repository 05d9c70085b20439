package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Feed event types pushed by the back office.
const (
	EventTicketCreated = "ticket_created"
	EventTicketUpdated = "ticket_updated"
	EventTicketClosed  = "ticket_closed"
)

// Event is the envelope on the ticket websocket stream.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Feed subscribes to the back office's kitchen websocket and applies
// ticket events to a Board. Losing the connection is not fatal: the feed
// redials and the board keeps whatever it last saw.
type Feed struct {
	url    string
	board  *Board
	tokens interface{ Token() string }
}

// NewFeed creates a feed for the given API base URL ("http(s)://...")
// targeting /ws/cocina.
func NewFeed(apiBaseURL string, tokens interface{ Token() string }, board *Board) *Feed {
	wsURL := strings.Replace(apiBaseURL, "http", "ws", 1)
	return &Feed{
		url:    strings.TrimRight(wsURL, "/") + "/ws/cocina",
		board:  board,
		tokens: tokens,
	}
}

// Run dials and consumes the feed until ctx is cancelled, redialing with
// a flat backoff on any error.
func (f *Feed) Run(ctx context.Context) {
	for {
		if err := f.consume(ctx); err != nil {
			slog.Warn("kitchen feed disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (f *Feed) consume(ctx context.Context) error {
	target := f.url
	if tok := f.tokens.Token(); tok != "" {
		target += "?token=" + url.QueryEscape(tok)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", f.url, err)
	}
	defer conn.Close()

	// Drop the connection when the context ends so ReadJSON unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		f.apply(ev)
	}
}

func (f *Feed) apply(ev Event) {
	switch ev.Type {
	case EventTicketCreated, EventTicketUpdated:
		var t Ticket
		if err := json.Unmarshal(ev.Payload, &t); err != nil {
			slog.Warn("bad ticket payload", "error", err)
			return
		}
		f.board.Upsert(t)
	case EventTicketClosed:
		var t struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Payload, &t); err != nil {
			slog.Warn("bad ticket payload", "error", err)
			return
		}
		f.board.Remove(t.ID)
	}
}
