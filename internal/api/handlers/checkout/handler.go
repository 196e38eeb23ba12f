package checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	createCheckout "github.com/m04kA/FarmStand-PickupService/internal/usecase/create_checkout"
)

const (
	msgInvalidQuantity    = "qty must be a whole number"
	msgInvalidSlotID      = "pickup_slot_id must be a number"
	msgInvalidInput       = "a product and a positive quantity are required"
	msgProductNotFound    = "product not found"
	msgProductUnavailable = "this product is sold out or no longer available"
	msgQuantityExceeded   = "quantity exceeds the per-order limit for this product"
	msgSlotNotFound       = "pickup slot not found"
	msgSlotStarted        = "this pickup time has already started, please choose another"
	msgOrderingPaused     = "ordering is temporarily paused, please try again later"
	msgCapacityPaused     = "pickups are fully booked for today, please try again tomorrow"
	msgSlotConflict       = "slot no longer available, please choose another pickup time"
	msgPaymentUnavailable = "payment is temporarily unavailable, please try again"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/checkout
// Query params: slug (required), qty (default 1), pickup_slot_id (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /checkout - Invalid query: %v", err)
		if errors.Is(err, errInvalidSlotID) {
			handlers.RespondBadRequest(w, msgInvalidSlotID)
		} else {
			handlers.RespondBadRequest(w, msgInvalidQuantity)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCheckout.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCheckout.ErrProductNotFound):
			handlers.RespondBadRequest(w, msgProductNotFound)

		case errors.Is(err, createCheckout.ErrProductUnavailable):
			handlers.RespondBadRequest(w, msgProductUnavailable)

		case errors.Is(err, createCheckout.ErrQuantityExceeded):
			handlers.RespondBadRequest(w, msgQuantityExceeded)

		case errors.Is(err, createCheckout.ErrSlotNotFound):
			handlers.RespondBadRequest(w, msgSlotNotFound)

		case errors.Is(err, createCheckout.ErrSlotStarted):
			handlers.RespondBadRequest(w, msgSlotStarted)

		case errors.Is(err, createCheckout.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createCheckout.ErrOrderingPaused):
			handlers.RespondServiceUnavailable(w, msgOrderingPaused)

		case errors.Is(err, createCheckout.ErrCapacityPaused):
			handlers.RespondServiceUnavailable(w, msgCapacityPaused)

		case errors.Is(err, createCheckout.ErrPaymentUnavailable):
			h.logger.Error("GET /checkout - Payment session failed: product=%s, error=%v", useCaseReq.Slug, err)
			handlers.RespondServiceUnavailable(w, msgPaymentUnavailable)

		default:
			h.logger.Error("GET /checkout - Failed to create checkout: product=%s, qty=%d, error=%v",
				useCaseReq.Slug, useCaseReq.Quantity, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /checkout - Redirecting to payment session: session=%s, product=%s",
		result.SessionID, useCaseReq.Slug)
	http.Redirect(w, r, result.URL, http.StatusSeeOther)
}
