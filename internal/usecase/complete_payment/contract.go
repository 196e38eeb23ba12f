package complete_payment

import (
	"context"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/email"
	"github.com/m04kA/FarmStand-PickupService/internal/service/ledger"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByPaymentSessionID(ctx context.Context, sessionID string) (*domain.Order, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// SlotRepository интерфейс репозитория слотов выдачи
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error)
}

// Ledger подтверждение и снятие удержаний
type Ledger interface {
	ConfirmHold(ctx context.Context, reference string) (*ledger.ConfirmResult, error)
	ReleaseHold(ctx context.Context, reference string) (bool, error)
}

// Notifier отправка письма-подтверждения
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, msg *email.OrderConfirmation) error
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
