package create_checkout

// Request модель запроса на оформление заказа
type Request struct {
	Slug         string
	Quantity     int
	PickupSlotID *int64
}

// Response модель ответа: куда перенаправить покупателя
type Response struct {
	SessionID     string
	URL           string
	Reference     string
	HoldReference *string // nil, если заказ без слота выдачи
}

// Значения метки outcome для метрик
const (
	outcomeCreated       = "created"
	outcomeInvalid       = "invalid"
	outcomePaused        = "paused"
	outcomeConflict      = "conflict"
	outcomePaymentFailed = "payment_failed"
	outcomeInternalError = "error"
)
