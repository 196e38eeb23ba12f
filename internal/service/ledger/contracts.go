package ledger

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// SlotRepository атомарные операции над счётчиком reserved
type SlotRepository interface {
	Reserve(ctx context.Context, id int64, qty int) (bool, error)
	Release(ctx context.Context, id int64, qty int) error
	SetHoldMarker(ctx context.Context, id int64, reference string, expiresAt time.Time) error
	ClearHoldMarker(ctx context.Context, id int64, reference string) error
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	Create(ctx context.Context, h *domain.SlotHold) (*domain.SlotHold, error)
	GetByReference(ctx context.Context, reference string) (*domain.SlotHold, error)
	Transition(ctx context.Context, reference string, to domain.HoldStatus) (bool, error)
	AttachPaymentSession(ctx context.Context, reference, sessionID string) error
	ListExpired(ctx context.Context, now time.Time, limit uint64) ([]*domain.SlotHold, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики исходов резервирования (*metrics.Metrics)
type Metrics interface {
	ObserveReservation(result string)
	ObserveHoldReleased(reason string, qty int)
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
