package update_order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	"github.com/m04kA/FarmStand-PickupService/internal/service/orders"
	"github.com/m04kA/FarmStand-PickupService/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "invalid order id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "invalid order status"
	msgStatusNotAllowed   = "status can only be set to ready, collected or canceled"
	msgInvalidTransition  = "order cannot move to this status"
	msgNotFound           = "order not found"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, orders.ErrStatusNotAllowed):
			handlers.RespondBadRequest(w, msgStatusNotAllowed)

		case errors.Is(err, orders.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, orders.ErrOrderNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /orders/{id}/status - Failed to update status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - Status updated: order_id=%d, status=%s", orderID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
