package settings

import (
	"context"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.GlobalSettings, error)
	Save(ctx context.Context, s domain.GlobalSettings) (*domain.GlobalSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
