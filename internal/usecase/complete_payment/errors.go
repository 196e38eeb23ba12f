package complete_payment

import "errors"

var (
	// ErrInvalidEvent возвращается, когда событие не содержит checkout-сессии или metadata некорректна
	ErrInvalidEvent = errors.New("complete_payment: invalid event")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_payment: internal error")

	// errDuplicate заказ по сессии уже записан, транзакция откатывается
	errDuplicate = errors.New("complete_payment: duplicate delivery")
)
