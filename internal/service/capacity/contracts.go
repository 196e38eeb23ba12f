package capacity

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// RuleRepository интерфейс репозитория правил вместимости
type RuleRepository interface {
	GetRule(ctx context.Context, weekday time.Weekday) (*domain.CapacityRule, error)
}

// OccupancyRepository интерфейс репозитория занятости площадки
type OccupancyRepository interface {
	Get(ctx context.Context, day time.Time) (*domain.OccupancySignal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
