package list_orders

import (
	"errors"
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	"github.com/m04kA/FarmStand-PickupService/internal/service/orders"
)

const (
	msgMissingDate   = "date is required"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus = "invalid order status"
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

// Handle GET /api/orders
// Query params: date (required, YYYY-MM-DD), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceReq, err := ToServiceRequest(dateStr, r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Warn("GET /orders - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByPickupDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /orders - Failed to list orders: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders - Orders retrieved: date=%s, count=%d", dateStr, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}
