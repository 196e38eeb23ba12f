package domain

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCollected OrderStatus = "collected"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// orderStatusRank порядок статусов, движение только вперёд
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPaid:      1,
	OrderStatusReady:     2,
	OrderStatusCollected: 3,
}

// Order is a paid (or being paid) purchase with an optional pickup slot
type Order struct {
	ID               int64
	PaymentSessionID string
	HoldReference    *string
	ProductID        int64
	ProductSlug      string
	Quantity         int
	PickupSlotID     *int64
	CustomerName     string
	CustomerEmail    string
	TotalCents       int64
	Currency         string
	Status           OrderStatus
	NeedsAttention   bool // slot could not be re-acquired after the hold expired

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCanceled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// IsTerminal returns true for collected and canceled orders
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCollected || s == OrderStatusCanceled
}

// CanTransitionTo returns true if the order may move from s to next.
// Statuses move strictly forward; canceled is reachable from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == OrderStatusCanceled {
		return true
	}
	return orderStatusRank[next] > orderStatusRank[s]
}

// HoldsSlotCapacity returns true if the order still counts against its slot
func (o *Order) HoldsSlotCapacity() bool {
	return o.PickupSlotID != nil && o.Status != OrderStatusCanceled
}
