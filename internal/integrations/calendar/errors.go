package calendar

import "errors"

var (
	// ErrNotConfigured возвращается, когда адрес фида не задан
	ErrNotConfigured = errors.New("calendar client: feed url not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе или формате фида
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
