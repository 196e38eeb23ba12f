package create_checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Slug) == "" {
		return fmt.Errorf("%w: product slug is required", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.PickupSlotID != nil && *req.PickupSlotID <= 0 {
		return fmt.Errorf("%w: pickup slot id must be positive", ErrInvalidInput)
	}
	return nil
}

// validateProduct проверяет, что товар можно купить в запрошенном количестве
func validateProduct(product *domain.Product, qty int) error {
	if !product.IsPurchasable() {
		return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Slug)
	}
	if product.MaxPerOrder > 0 && qty > product.MaxPerOrder {
		return fmt.Errorf("%w: max %d", ErrQuantityExceeded, product.MaxPerOrder)
	}
	return nil
}

// validateSlot проверяет, что слот ещё не начался
func validateSlot(slot *domain.PickupSlot, now time.Time) error {
	if slot.HasStarted(now) {
		return fmt.Errorf("%w: slot=%d", ErrSlotStarted, slot.ID)
	}
	return nil
}
