package payments

import "errors"

var (
	// ErrPaymentProvider возвращается, когда Stripe не смог создать сессию
	ErrPaymentProvider = errors.New("payments client: payment provider error")

	// ErrInvalidSignature возвращается при неверной подписи webhook
	ErrInvalidSignature = errors.New("payments client: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда тело события не удалось разобрать
	ErrInvalidPayload = errors.New("payments client: invalid event payload")

	// ErrNotConfigured возвращается, когда секретный ключ не задан
	ErrNotConfigured = errors.New("payments client: not configured")
)
