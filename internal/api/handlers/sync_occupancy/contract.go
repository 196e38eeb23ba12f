package sync_occupancy

import (
	"context"

	syncOccupancy "github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
)

type SyncOccupancyUseCase interface {
	Execute(ctx context.Context, req *syncOccupancy.Request) (*syncOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
