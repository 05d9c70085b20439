package backoffice

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/comanda-pos/terminal/internal/enum"
	"github.com/comanda-pos/terminal/internal/kitchen"
)

type createTicketRequest struct {
	Table    string `json:"table"`
	Server   string `json:"server"`
	Note     string `json:"note"`
	Priority string `json:"priority"`
	Items    []struct {
		Name          string `json:"name"`
		EstimatedTime int    `json:"estimated_time"`
	} `json:"items"`
}

// createTicket handles POST /cocina/tickets: a kitchen ticket enters the
// system and is pushed to every feed subscriber.
func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "solicitud inválida"})
		return
	}
	if req.Table == "" || len(req.Items) == 0 {
		writeValidation(w, map[string][]string{
			"cantidad": {"La mesa y al menos un platillo son obligatorios."},
		})
		return
	}

	priority := req.Priority
	if priority != enum.PriorityHigh {
		priority = enum.PriorityNormal
	}

	t := kitchen.Ticket{
		ID:        uuid.New().String(),
		Table:     req.Table,
		Server:    req.Server,
		CreatedAt: time.Now(),
		Note:      req.Note,
		Priority:  priority,
	}
	for _, it := range req.Items {
		t.Items = append(t.Items, kitchen.Item{
			ID:            uuid.New().String(),
			Name:          it.Name,
			Status:        enum.ItemStatusPending,
			EstimatedTime: it.EstimatedTime,
		})
	}

	s.hub.publish(kitchen.EventTicketCreated, t)
	writeJSON(w, http.StatusCreated, t)
}
