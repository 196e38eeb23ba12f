package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	generateSlots "github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
)

const (
	msgInvalidDays   = "days must be a whole number between 1 and 90"
	msgConfiguration = "capacity rule missing for a weekday, slots were not generated"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/pickup-slots/generate
// Query params: days (optional, default from config)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query().Get("days"))
	if err != nil {
		h.logger.Warn("POST /pickup-slots/generate - Invalid days: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDays)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, generateSlots.ErrConfiguration):
			h.logger.Error("POST /pickup-slots/generate - Configuration error: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgConfiguration)

		default:
			h.logger.Error("POST /pickup-slots/generate - Failed to generate slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pickup-slots/generate - Slots generated: created=%d, days=%d",
		result.SlotsCreated, result.DaysProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
