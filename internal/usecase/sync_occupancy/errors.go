package sync_occupancy

import "errors"

var (
	// ErrFeedUnavailable возвращается, когда фид календаря не удалось получить
	ErrFeedUnavailable = errors.New("sync_occupancy: calendar feed unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_occupancy: internal error")
)
