package complete_payment

// Outcome как было обработано событие
type Outcome string

const (
	OutcomeOrderCreated Outcome = "order_created"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeHoldReleased Outcome = "hold_released"
	OutcomeIgnored      Outcome = "ignored"
)

// Result итог обработки события
type Result struct {
	Outcome        Outcome
	OrderID        int64 // 0, если заказ не создавался
	NeedsAttention bool
}

// Статусы оплаты checkout-сессии, при которых заказ считается оплаченным
const (
	paymentStatusPaid              = "paid"
	paymentStatusNoPaymentRequired = "no_payment_required"
)

// sessionMetadata разобранная metadata checkout-сессии
type sessionMetadata struct {
	ProductID     int64
	ProductSlug   string
	Quantity      int
	PickupSlotID  *int64
	HoldReference *string
}
