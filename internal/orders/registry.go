// Package orders is the terminal-local order registry: customer orders
// distinct from the transient POS cart, persisted as one JSON snapshot on
// every mutation and reloaded on startup.
package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comanda-pos/terminal/internal/enum"
	"github.com/comanda-pos/terminal/internal/localstore"
)

var (
	ErrOrderNotFound = errors.New("orders: order not found")
	ErrItemNotFound  = errors.New("orders: item not found")
	ErrInvalidStatus = errors.New("orders: invalid item status")
	ErrEmptyOrder    = errors.New("orders: order needs at least one item")
	ErrOrderClosed   = errors.New("orders: order is delivered or cancelled")
)

// Item is one line of a registered order.
type Item struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note"`
	Status    string          `json:"status"`
}

// Order is a locally registered customer order.
type Order struct {
	ID        int             `json:"id"`
	TableID   int             `json:"table_id"`
	Server    string          `json:"server"`
	CreatedAt time.Time       `json:"created_at"`
	Status    string          `json:"status"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Priority  string          `json:"priority"`
}

// Notifier receives a user-facing notice on every order status change
// (the toast analog). Implementations must not block.
type Notifier interface {
	Notify(orderID int, status, label string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(int, string, string) {}

// Registry holds the order collection. Every mutation rewrites the
// snapshot under the "orders" key.
type Registry struct {
	mu       sync.Mutex
	db       *localstore.Store
	notifier Notifier
	orders   []Order
}

// NewRegistry creates a registry over db. notifier may be nil.
func NewRegistry(db *localstore.Store, notifier Notifier) *Registry {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Registry{db: db, notifier: notifier}
}

// Load restores the registry from its snapshot. A missing snapshot means
// an empty registry.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []Order
	if err := r.db.Get(localstore.KeyOrders, &orders); err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			r.orders = nil
			return nil
		}
		return err
	}
	r.orders = orders
	return nil
}

// Create registers a new pending order. The id is max(existing)+1 (1 on
// an empty registry); item ids are assigned 1..n; items start pending;
// the total is Σ price×qty.
func (r *Registry) Create(tableID int, server string, items []Item, priority string) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	if priority != enum.PriorityHigh {
		priority = enum.PriorityNormal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	prepared := make([]Item, len(items))
	for i, it := range items {
		it.ID = i + 1
		it.Status = enum.ItemStatusPending
		prepared[i] = it
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	o := Order{
		ID:        r.nextIDLocked(),
		TableID:   tableID,
		Server:    server,
		CreatedAt: time.Now(),
		Status:    enum.OrderStatusPending,
		Items:     prepared,
		Total:     total,
		Priority:  priority,
	}
	r.orders = append(r.orders, o)

	if err := r.saveLocked(); err != nil {
		r.orders = r.orders[:len(r.orders)-1]
		return Order{}, err
	}
	r.notifier.Notify(o.ID, o.Status, enum.StatusLabels[o.Status])
	return cloneOrder(o), nil
}

// nextIDLocked assigns max(existing ids)+1, degrading to 1 on an empty
// collection. Not globally monotonic beyond what is persisted.
func (r *Registry) nextIDLocked() int {
	max := 0
	for _, o := range r.orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// List returns copies of all orders, oldest first.
func (r *Registry) List() []Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Get returns a copy of one order.
func (r *Registry) Get(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := r.findLocked(id)
	if o == nil {
		return Order{}, ErrOrderNotFound
	}
	return cloneOrder(*o), nil
}

// SetItemStatus updates one item's kitchen status and re-derives the
// order status. Delivered and cancelled orders are sticky: the item still
// updates, but the rollup no longer rewrites the order status.
func (r *Registry) SetItemStatus(orderID, itemID int, status string) (Order, error) {
	if !enum.IsItemStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o := r.findLocked(orderID)
	if o == nil {
		return Order{}, ErrOrderNotFound
	}

	found := false
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return Order{}, ErrItemNotFound
	}

	changed := ""
	if !isTerminal(o.Status) {
		if next := deriveStatus(o.Status, o.Items); next != o.Status {
			o.Status = next
			changed = next
		}
	}

	if err := r.saveLocked(); err != nil {
		return Order{}, err
	}
	if changed != "" {
		r.notifier.Notify(o.ID, changed, enum.StatusLabels[changed])
	}
	return cloneOrder(*o), nil
}

// Deliver marks an order delivered. Only a non-terminal order can be
// delivered.
func (r *Registry) Deliver(id int) (Order, error) {
	return r.close(id, enum.OrderStatusDelivered)
}

// Cancel force-cancels an order from any non-terminal state.
func (r *Registry) Cancel(id int) (Order, error) {
	return r.close(id, enum.OrderStatusCancelled)
}

func (r *Registry) close(id int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := r.findLocked(id)
	if o == nil {
		return Order{}, ErrOrderNotFound
	}
	if isTerminal(o.Status) {
		return Order{}, ErrOrderClosed
	}

	o.Status = status
	if err := r.saveLocked(); err != nil {
		return Order{}, err
	}
	r.notifier.Notify(o.ID, status, enum.StatusLabels[status])
	return cloneOrder(*o), nil
}

func (r *Registry) findLocked(id int) *Order {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return &r.orders[i]
		}
	}
	return nil
}

func (r *Registry) saveLocked() error {
	return r.db.Put(localstore.KeyOrders, r.orders)
}

// deriveStatus is the pure rollup from item statuses, run after every
// item mutation so the invariant never drifts: all items ready → ready;
// a pending order with any item off pending → in_progress.
func deriveStatus(current string, items []Item) string {
	allReady := true
	anyStarted := false
	for _, it := range items {
		if it.Status != enum.ItemStatusReady {
			allReady = false
		}
		if it.Status != enum.ItemStatusPending {
			anyStarted = true
		}
	}
	if allReady && len(items) > 0 {
		return enum.OrderStatusReady
	}
	if current == enum.OrderStatusPending && anyStarted {
		return enum.OrderStatusInProgress
	}
	if current == enum.OrderStatusReady && !allReady {
		// An item fed back off ready drops the order back to in_progress.
		return enum.OrderStatusInProgress
	}
	return current
}

func isTerminal(status string) bool {
	return status == enum.OrderStatusDelivered || status == enum.OrderStatusCancelled
}

func cloneOrder(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
