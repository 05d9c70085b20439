package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/comanda-pos/terminal/internal/orders"
)

// OrderRegistry is the registry surface the order handlers need.
// Satisfied by *orders.Registry.
type OrderRegistry interface {
	List() []orders.Order
	Get(id int) (orders.Order, error)
	Create(tableID int, server string, items []orders.Item, priority string) (orders.Order, error)
	SetItemStatus(orderID, itemID int, status string) (orders.Order, error)
	Deliver(id int) (orders.Order, error)
	Cancel(id int) (orders.Order, error)
}

// OrdersHandler exposes the local order registry.
type OrdersHandler struct {
	registry OrderRegistry
}

// NewOrdersHandler creates an OrdersHandler.
func NewOrdersHandler(registry OrderRegistry) *OrdersHandler {
	return &OrdersHandler{registry: registry}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrdersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/items/{iid}/status", h.SetItemStatus)
	r.Post("/{id}/deliver", h.Deliver)
	r.Post("/{id}/cancel", h.Cancel)
}

type orderItemResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
	Status    string `json:"status"`
}

type orderResponse struct {
	ID        int                 `json:"id"`
	TableID   int                 `json:"table_id"`
	Server    string              `json:"server"`
	CreatedAt time.Time           `json:"created_at"`
	Status    string              `json:"status"`
	Items     []orderItemResponse `json:"items"`
	Total     string              `json:"total"`
	Priority  string              `json:"priority"`
}

type itemStatusRequest struct {
	Status string `json:"status"`
}

type createOrderRequest struct {
	TableID  int    `json:"table_id"`
	Server   string `json:"server"`
	Priority string `json:"priority"`
	Items    []struct {
		ProductID int    `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	} `json:"items"`
}

func toOrderResponse(o orders.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Quantity:  it.Quantity,
			Note:      it.Note,
			Status:    it.Status,
		}
	}
	return orderResponse{
		ID:        o.ID,
		TableID:   o.TableID,
		Server:    o.Server,
		CreatedAt: o.CreatedAt,
		Status:    o.Status,
		Items:     items,
		Total:     o.Total.StringFixed(2),
		Priority:  o.Priority,
	}
}

// List handles GET /orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.registry.List()
	resp := make([]orderResponse, len(all))
	for i, o := range all {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /orders: an order registered directly, bypassing
// the cart (e.g. phone orders keyed in at once).
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TableID <= 0 {
		writeError(w, http.StatusBadRequest, "table_id is required")
		return
	}

	items := make([]orders.Item, len(req.Items))
	for i, it := range req.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil || price.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid item price")
			return
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		items[i] = orders.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     price,
			Quantity:  qty,
			Note:      it.Note,
		}
	}

	o, err := h.registry.Create(req.TableID, req.Server, items, req.Priority)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyOrder) {
			writeError(w, http.StatusBadRequest, "order needs at least one item")
			return
		}
		slog.Error("create order", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// Get handles GET /orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := h.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// SetItemStatus handles PATCH /orders/{id}/items/{iid}/status.
func (h *OrdersHandler) SetItemStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	iid, err := strconv.Atoi(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.registry.SetItemStatus(id, iid, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid status")
		case errors.Is(err, orders.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, orders.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		default:
			slog.Error("set item status", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// Deliver handles POST /orders/{id}/deliver.
func (h *OrdersHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.closeOrder(w, r, h.registry.Deliver)
}

// Cancel handles POST /orders/{id}/cancel.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.closeOrder(w, r, h.registry.Cancel)
}

func (h *OrdersHandler) closeOrder(w http.ResponseWriter, r *http.Request, fn func(int) (orders.Order, error)) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := fn(id)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, orders.ErrOrderClosed):
			writeError(w, http.StatusConflict, "order is already delivered or cancelled")
		default:
			slog.Error("close order", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
