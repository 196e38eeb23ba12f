package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что день не в прошлом относительно now
func validateDate(day time.Time, now time.Time) error {
	if domain.DayOf(day).Before(domain.DayOf(now)) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, day.Format(domain.DateFormat))
	}
	return nil
}
