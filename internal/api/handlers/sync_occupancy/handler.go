package sync_occupancy

import (
	"errors"
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
	syncOccupancy "github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
)

const msgFeedUnavailable = "calendar feed is unavailable"

type Handler struct {
	useCase SyncOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase SyncOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/occupancy/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &syncOccupancy.Request{})
	if err != nil {
		switch {
		case errors.Is(err, syncOccupancy.ErrFeedUnavailable):
			h.logger.Warn("POST /occupancy/sync - Feed unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgFeedUnavailable)

		default:
			h.logger.Error("POST /occupancy/sync - Failed to sync occupancy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /occupancy/sync - Synced: days=%d, occupied=%d", result.DaysSynced, result.DaysOccupied)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
