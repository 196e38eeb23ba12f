package sync_occupancy

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/calendar"
)

// CalendarClient источник событий занятости площадки
type CalendarClient interface {
	FetchEvents(ctx context.Context) ([]calendar.Event, error)
}

// OccupancyRepository интерфейс репозитория сигналов занятости
type OccupancyRepository interface {
	Upsert(ctx context.Context, signal domain.OccupancySignal) error
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
