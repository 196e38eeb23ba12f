package governor

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// SettingsRepository источник глобальных настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.GlobalSettings, error)
}

// SlotRepository суммарная загрузка слотов дня
type SlotRepository interface {
	SumByDay(ctx context.Context, day time.Time) (reserved int, capacity int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
