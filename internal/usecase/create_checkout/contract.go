package create_checkout

import (
	"context"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	"github.com/m04kA/FarmStand-PickupService/internal/service/governor"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// SlotRepository интерфейс репозитория слотов выдачи
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error)
}

// Governor проверка допуска новых заказов
type Governor interface {
	CheckAdmission(ctx context.Context, day time.Time) (*governor.Admission, error)
}

// Ledger удержание и компенсационное снятие мест
type Ledger interface {
	Hold(ctx context.Context, slotID int64, qty int) (*domain.SlotHold, bool, error)
	ReleaseHold(ctx context.Context, reference string) (bool, error)
	AttachPaymentSession(ctx context.Context, reference, sessionID string) error
}

// PaymentsClient интерфейс клиента платёжного провайдера
type PaymentsClient interface {
	CreateCheckoutSession(ctx context.Context, req *payments.CheckoutRequest) (*payments.Session, error)
}

// Metrics учёт исходов оформления
type Metrics interface {
	ObserveCheckout(outcome string)
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
