package checkout

import (
	"errors"
	"net/url"
	"strconv"

	createCheckout "github.com/m04kA/FarmStand-PickupService/internal/usecase/create_checkout"
)

var (
	errInvalidQuantity = errors.New("invalid qty")
	errInvalidSlotID   = errors.New("invalid pickup_slot_id")
)

// ToUseCaseRequest создает запрос use case из query параметров.
// qty по умолчанию 1, pickup_slot_id необязателен.
func ToUseCaseRequest(q url.Values) (*createCheckout.Request, error) {
	req := &createCheckout.Request{
		Slug:     q.Get("slug"),
		Quantity: 1,
	}

	if raw := q.Get("qty"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errInvalidQuantity
		}
		req.Quantity = qty
	}

	if raw := q.Get("pickup_slot_id"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errInvalidSlotID
		}
		req.PickupSlotID = &slotID
	}

	return req, nil
}
