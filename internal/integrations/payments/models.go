package payments

// Ключи metadata checkout-сессии, по которым webhook находит удержание
const (
	MetadataProductID     = "product_id"
	MetadataProductSlug   = "product_slug"
	MetadataQuantity      = "quantity"
	MetadataPickupSlotID  = "pickup_slot_id"
	MetadataHoldReference = "hold_reference"
)

// Типы событий Stripe, которые обрабатывает сервис
const (
	EventCheckoutCompleted          = "checkout.session.completed"
	EventCheckoutExpired            = "checkout.session.expired"
	EventCheckoutAsyncPaymentOK     = "checkout.session.async_payment_succeeded"
	EventCheckoutAsyncPaymentFailed = "checkout.session.async_payment_failed"
)

// CheckoutRequest параметры новой checkout-сессии
type CheckoutRequest struct {
	Reference       string // идемпотентность и client_reference_id
	ProductID       int64
	ProductSlug     string
	ProductName     string
	UnitAmountCents int64
	Currency        string
	Quantity        int
	PickupSlotID    *int64
	HoldReference   *string
}

// Session созданная checkout-сессия
type Session struct {
	ID  string
	URL string
}

// Event проверенное событие Stripe
type Event struct {
	ID      string
	Type    string
	Session *CheckoutSession // nil для событий не о checkout-сессии
}

// CheckoutSession данные checkout-сессии из события
type CheckoutSession struct {
	ID                string
	ClientReferenceID string
	PaymentStatus     string
	CustomerEmail     string
	CustomerName      string
	AmountTotal       int64
	Currency          string
	Metadata          map[string]string
}
