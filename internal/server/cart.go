package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/comanda-pos/terminal/internal/orders"
	"github.com/comanda-pos/terminal/internal/pos"
)

// OrderCreator is the slice of the order registry the cart needs to
// submit. Satisfied by *orders.Registry.
type OrderCreator interface {
	Create(tableID int, server string, items []orders.Item, priority string) (orders.Order, error)
}

// CartHandler exposes the POS cart.
type CartHandler struct {
	cart     *pos.Cart
	registry OrderCreator
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(cart *pos.Cart, registry OrderCreator) *CartHandler {
	return &CartHandler{cart: cart, registry: registry}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Delete("/", h.Clear)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{pid}", h.UpdateItem)
	r.Delete("/items/{pid}", h.RemoveItem)
	r.Post("/submit", h.Submit)
}

type addItemRequest struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

type updateItemRequest struct {
	QuantityDelta *int    `json:"quantity_delta"`
	Note          *string `json:"note"`
}

type submitRequest struct {
	TableID  int    `json:"table_id"`
	Server   string `json:"server"`
	Priority string `json:"priority"`
}

type cartResponse struct {
	Lines    []pos.Line `json:"lines"`
	Subtotal string     `json:"subtotal"`
	Tax      string     `json:"tax"`
	Total    string     `json:"total"`
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int) {
	subtotal, tax, total := h.cart.Totals()
	writeJSON(w, status, cartResponse{
		Lines:    h.cart.Lines(),
		Subtotal: subtotal.StringFixed(2),
		Tax:      tax.StringFixed(2),
		Total:    total.StringFixed(2),
	})
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, http.StatusOK)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID <= 0 || req.Name == "" {
		writeError(w, http.StatusBadRequest, "product_id and name are required")
		return
	}
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil || price.IsNegative() {
		writeError(w, http.StatusBadRequest, "invalid unit_price")
		return
	}

	h.cart.Add(req.ProductID, req.Name, price)
	h.respondCart(w, http.StatusOK)
}

// UpdateItem handles PATCH /cart/items/{pid}: quantity delta and/or note.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.QuantityDelta != nil {
		h.cart.Adjust(pid, *req.QuantityDelta)
	}
	if req.Note != nil {
		h.cart.SetNote(pid, *req.Note)
	}
	h.respondCart(w, http.StatusOK)
}

// RemoveItem handles DELETE /cart/items/{pid}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	h.cart.Remove(pid)
	h.respondCart(w, http.StatusOK)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	h.respondCart(w, http.StatusOK)
}

// Submit handles POST /cart/submit: the cart becomes a registry order and
// is cleared only after the order is stored.
func (h *CartHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TableID <= 0 {
		writeError(w, http.StatusBadRequest, "table_id is required")
		return
	}

	lines := h.cart.Lines()
	items := make([]orders.Item, len(lines))
	for i, l := range lines {
		items[i] = orders.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Note:      l.Note,
		}
	}

	order, err := h.registry.Create(req.TableID, req.Server, items, req.Priority)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyOrder) {
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		slog.Error("submit cart", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.cart.Clear()
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}
