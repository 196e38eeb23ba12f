package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// CapacityResolver вычисление вместимости слота на день
type CapacityResolver interface {
	ResolveCapacity(ctx context.Context, day time.Time) (int, error)
}

// WindowRepository интерфейс репозитория шаблонов окон выдачи
type WindowRepository interface {
	ListActiveWindows(ctx context.Context, weekday time.Weekday) ([]*domain.PickupWindow, error)
}

// SlotRepository интерфейс репозитория слотов выдачи
type SlotRepository interface {
	CreateIfNotExists(ctx context.Context, s *domain.PickupSlot) (bool, error)
}

// Metrics учёт созданных слотов
type Metrics interface {
	AddSlotsGenerated(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
