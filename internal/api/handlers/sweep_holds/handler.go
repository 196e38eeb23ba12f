package sweep_holds

import (
	"net/http"

	"github.com/m04kA/FarmStand-PickupService/internal/api/handlers"
)

type Handler struct {
	sweeper HoldSweeper
	logger  Logger
}

func NewHandler(sweeper HoldSweeper, logger Logger) *Handler {
	return &Handler{
		sweeper: sweeper,
		logger:  logger,
	}
}

// Handle POST /api/pickup-slots/sweep-holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	released, err := h.sweeper.SweepExpiredHolds(r.Context())
	if err != nil {
		h.logger.Error("POST /pickup-slots/sweep-holds - Sweep failed after %d hold(s): %v", released, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /pickup-slots/sweep-holds - Holds released: %d", released)
	handlers.RespondJSON(w, http.StatusOK, SweepHoldsResponse{Success: true, HoldsReleased: released})
}
