package scheduler

import (
	"context"

	"github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
	"github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
)

// SlotGenerator генерация слотов на окно вперёд
type SlotGenerator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// HoldSweeper освобождение просроченных удержаний
type HoldSweeper interface {
	SweepExpiredHolds(ctx context.Context) (int, error)
}

// OccupancySyncer синхронизация сигнала занятости из календаря
type OccupancySyncer interface {
	Execute(ctx context.Context, req *sync_occupancy.Request) (*sync_occupancy.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
