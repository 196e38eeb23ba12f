package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("orders: invalid input data")

	// ErrStatusNotAllowed возвращается при попытке вручную выставить pending или paid
	ErrStatusNotAllowed = errors.New("orders: status cannot be set manually")

	// ErrInvalidTransition возвращается при переходе назад или из конечного статуса
	ErrInvalidTransition = errors.New("orders: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
