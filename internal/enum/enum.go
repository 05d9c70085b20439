package enum

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Item statuses, shared by order items and kitchen tickets.
const (
	ItemStatusPending = "pending"
	ItemStatusCooking = "cooking"
	ItemStatusReady   = "ready"
)

// Priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// StatusLabels maps order statuses to the Spanish labels shown to staff.
// The upstream back office speaks Spanish (/empleados, /mesas, ...).
var StatusLabels = map[string]string{
	OrderStatusPending:    "pendiente",
	OrderStatusInProgress: "en preparación",
	OrderStatusReady:      "lista",
	OrderStatusDelivered:  "entregada",
	OrderStatusCancelled:  "cancelada",
}

// IsOrderStatus reports whether s is a known order status.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsItemStatus reports whether s is a known item status.
func IsItemStatus(s string) bool {
	switch s {
	case ItemStatusPending, ItemStatusCooking, ItemStatusReady:
		return true
	}
	return false
}
