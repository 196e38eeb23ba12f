package complete_payment

import (
	"fmt"
	"strconv"

	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
)

// parseMetadata читает metadata, записанную при создании сессии
func parseMetadata(md map[string]string) (*sessionMetadata, error) {
	out := &sessionMetadata{ProductSlug: md[payments.MetadataProductSlug]}

	productID, err := strconv.ParseInt(md[payments.MetadataProductID], 10, 64)
	if err != nil || productID <= 0 {
		return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidEvent, payments.MetadataProductID, md[payments.MetadataProductID])
	}
	out.ProductID = productID

	qty, err := strconv.Atoi(md[payments.MetadataQuantity])
	if err != nil || qty <= 0 {
		return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidEvent, payments.MetadataQuantity, md[payments.MetadataQuantity])
	}
	out.Quantity = qty

	if raw, ok := md[payments.MetadataPickupSlotID]; ok && raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || slotID <= 0 {
			return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidEvent, payments.MetadataPickupSlotID, raw)
		}
		out.PickupSlotID = &slotID
	}

	if ref, ok := md[payments.MetadataHoldReference]; ok && ref != "" {
		out.HoldReference = &ref
	}

	if out.PickupSlotID != nil && out.HoldReference == nil {
		return nil, fmt.Errorf("%w: pickup slot without hold reference", ErrInvalidEvent)
	}

	return out, nil
}
