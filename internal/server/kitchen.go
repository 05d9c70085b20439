package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/comanda-pos/terminal/internal/kitchen"
)

// KitchenHandler exposes the kitchen display board.
type KitchenHandler struct {
	board *kitchen.Board
}

// NewKitchenHandler creates a KitchenHandler.
func NewKitchenHandler(board *kitchen.Board) *KitchenHandler {
	return &KitchenHandler{board: board}
}

// RegisterRoutes registers kitchen endpoints on the given Chi router.
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tickets", h.List)
	r.Post("/tickets/{tid}/items/{iid}/advance", h.AdvanceItem)
	r.Post("/tickets/{tid}/ready", h.MarkAllReady)
}

type ticketItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	EstimatedTime int    `json:"estimated_time"`
}

type ticketResponse struct {
	ID        string               `json:"id"`
	Table     string               `json:"table"`
	Server    string               `json:"server"`
	CreatedAt time.Time            `json:"created_at"`
	Elapsed   string               `json:"elapsed"`
	Items     []ticketItemResponse `json:"items"`
	Note      string               `json:"note"`
	Priority  string               `json:"priority"`
	Ready     string               `json:"ready"`
}

func toTicketResponse(t kitchen.Ticket, now time.Time) ticketResponse {
	items := make([]ticketItemResponse, len(t.Items))
	for i, it := range t.Items {
		items[i] = ticketItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			Status:        it.Status,
			EstimatedTime: it.EstimatedTime,
		}
	}
	return ticketResponse{
		ID:        t.ID,
		Table:     t.Table,
		Server:    t.Server,
		CreatedAt: t.CreatedAt,
		Elapsed:   t.Elapsed(now),
		Items:     items,
		Note:      t.Note,
		Priority:  t.Priority,
		Ready:     t.ReadySummary(),
	}
}

// List handles GET /cocina/tickets in display order.
func (h *KitchenHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	tickets := h.board.Tickets()
	resp := make([]ticketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = toTicketResponse(t, now)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdvanceItem handles POST /cocina/tickets/{tid}/items/{iid}/advance.
func (h *KitchenHandler) AdvanceItem(w http.ResponseWriter, r *http.Request) {
	t, err := h.board.AdvanceItem(chi.URLParam(r, "tid"), chi.URLParam(r, "iid"))
	if err != nil {
		h.writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, time.Now()))
}

// MarkAllReady handles POST /cocina/tickets/{tid}/ready.
func (h *KitchenHandler) MarkAllReady(w http.ResponseWriter, r *http.Request) {
	t, err := h.board.MarkAllReady(chi.URLParam(r, "tid"))
	if err != nil {
		h.writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, time.Now()))
}

func (h *KitchenHandler) writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kitchen.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, "ticket not found")
	case errors.Is(err, kitchen.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
