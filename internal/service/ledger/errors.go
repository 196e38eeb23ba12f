package ledger

import "errors"

var (
	// ErrInvalidQuantity возвращается при qty <= 0
	ErrInvalidQuantity = errors.New("ledger: quantity must be positive")

	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = errors.New("ledger: slot not found")

	// ErrHoldNotFound возвращается, когда удержание не найдено
	ErrHoldNotFound = errors.New("ledger: hold not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger: internal error")
)
