package capacity

import "errors"

var (
	// ErrConfiguration возвращается, когда для дня недели нет правила вместимости.
	// Исправляется оператором, генерация слотов должна падать, а не пропускать день.
	ErrConfiguration = errors.New("capacity: no capacity rule for weekday")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
