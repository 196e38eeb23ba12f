package generate_slots

import "errors"

var (
	// ErrConfiguration возвращается, когда для дня недели нет правила вместимости
	ErrConfiguration = errors.New("generate_slots: capacity rule missing")

	// ErrInvalidInput возвращается при некорректном окне генерации
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
