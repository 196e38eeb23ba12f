package orders

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByPickupDate(ctx context.Context, day time.Time, status *domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

// Ledger возврат мест при отмене заказа
type Ledger interface {
	ReleaseConfirmed(ctx context.Context, slotID int64, qty int) error
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
