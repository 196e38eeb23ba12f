package create_checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	productRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/product"
	slotRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/slot"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	"github.com/m04kA/FarmStand-PickupService/internal/service/governor"
)

// UseCase оформление заказа: допуск, удержание слота, платёжная сессия.
// Ошибка после удержания всегда снимает его до возврата из Execute.
type UseCase struct {
	productRepo  ProductRepository
	slotRepo     SlotRepository
	governor     Governor
	ledger       Ledger
	payments     PaymentsClient
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	slotRepo SlotRepository,
	governor Governor,
	ledger Ledger,
	payments PaymentsClient,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		productRepo:  productRepo,
		slotRepo:     slotRepo,
		governor:     governor,
		ledger:       ledger,
		payments:     payments,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, outcome, err := uc.execute(ctx, req)
	uc.metrics.ObserveCheckout(outcome)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, string, error) {
	uc.logger.Info("CreateCheckout: product=%s, qty=%d, slot=%s", req.Slug, req.Quantity, formatSlot(req.PickupSlotID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		return nil, outcomeInvalid, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 2. Получаем товар
	product, err := uc.productRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			uc.logger.Warn("CreateCheckout: product=%s not found", req.Slug)
			return nil, outcomeInvalid, ErrProductNotFound
		}
		uc.logger.Error("CreateCheckout: failed to get product=%s: %v", req.Slug, err)
		return nil, outcomeInternalError, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
	}

	if err := validateProduct(product, req.Quantity); err != nil {
		uc.logger.Warn("CreateCheckout: product=%s qty=%d rejected: %v", req.Slug, req.Quantity, err)
		return nil, outcomeInvalid, err
	}

	// 3. Проверяем слот выдачи
	if req.PickupSlotID != nil {
		slot, err := uc.slotRepo.GetByID(ctx, *req.PickupSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateCheckout: slot=%d not found", *req.PickupSlotID)
				return nil, outcomeInvalid, ErrSlotNotFound
			}
			uc.logger.Error("CreateCheckout: failed to get slot=%d: %v", *req.PickupSlotID, err)
			return nil, outcomeInternalError, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if err := validateSlot(slot, now); err != nil {
			uc.logger.Warn("CreateCheckout: %v", err)
			return nil, outcomeInvalid, err
		}
	}

	// 4. Допуск: panic mode и автопауза по загрузке сегодняшнего дня
	admission, err := uc.governor.CheckAdmission(ctx, domain.DayOf(now))
	if err != nil {
		uc.logger.Error("CreateCheckout: admission check failed: %v", err)
		return nil, outcomeInternalError, fmt.Errorf("%w: admission check: %v", ErrInternal, err)
	}
	if !admission.Allowed {
		uc.logger.Warn("CreateCheckout: product=%s denied: %s", req.Slug, admission.Reason)
		if admission.Reason == governor.ReasonPanicMode {
			return nil, outcomePaused, ErrOrderingPaused
		}
		return nil, outcomePaused, ErrCapacityPaused
	}

	// 5. Удерживаем места в слоте
	reference := uuid.NewString()
	var holdRef *string

	if req.PickupSlotID != nil {
		hold, ok, err := uc.ledger.Hold(ctx, *req.PickupSlotID, req.Quantity)
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to hold slot=%d qty=%d product=%s: %v",
				*req.PickupSlotID, req.Quantity, req.Slug, err)
			return nil, outcomeInternalError, fmt.Errorf("%w: hold slot: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("CreateCheckout: slot=%d has no room for qty=%d", *req.PickupSlotID, req.Quantity)
			return nil, outcomeConflict, ErrSlotConflict
		}
		reference = hold.Reference
		holdRef = &hold.Reference
	}

	// 6. Создаём платёжную сессию
	session, err := uc.payments.CreateCheckoutSession(ctx, &payments.CheckoutRequest{
		Reference:       reference,
		ProductID:       product.ID,
		ProductSlug:     product.Slug,
		ProductName:     product.Name,
		UnitAmountCents: product.PriceCents,
		Currency:        product.Currency,
		Quantity:        req.Quantity,
		PickupSlotID:    req.PickupSlotID,
		HoldReference:   holdRef,
	})
	if err != nil {
		uc.logger.Error("CreateCheckout: payment session failed ref=%s product=%s qty=%d: %v",
			reference, req.Slug, req.Quantity, err)

		// 6.1. Компенсация: места возвращаются до ответа клиенту
		if holdRef != nil {
			uc.compensate(ctx, *holdRef)
		}
		return nil, outcomePaymentFailed, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	// 7. Связываем удержание с сессией для webhook
	if holdRef != nil {
		if err := uc.ledger.AttachPaymentSession(ctx, *holdRef, session.ID); err != nil {
			// Связь справочная: webhook находит удержание по metadata
			uc.logger.Warn("CreateCheckout: failed to attach session=%s to hold ref=%s: %v", session.ID, *holdRef, err)
		}
	}

	uc.logger.Info("CreateCheckout: session=%s created for product=%s qty=%d ref=%s",
		session.ID, req.Slug, req.Quantity, reference)

	return &Response{
		SessionID:     session.ID,
		URL:           session.URL,
		Reference:     reference,
		HoldReference: holdRef,
	}, outcomeCreated, nil
}

// compensate синхронно снимает удержание, отмена контекста запроса на него не влияет
func (uc *UseCase) compensate(ctx context.Context, reference string) {
	released, err := uc.ledger.ReleaseHold(context.WithoutCancel(ctx), reference)
	if err != nil {
		uc.logger.Error("CreateCheckout: COMPENSATION FAILED for hold ref=%s, sweep will reclaim it: %v", reference, err)
		return
	}
	uc.logger.Info("CreateCheckout: hold ref=%s released after payment failure (released=%t)", reference, released)
}

func formatSlot(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
