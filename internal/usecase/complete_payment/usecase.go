package complete_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	orderRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/order"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/email"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/payments"
	"github.com/m04kA/FarmStand-PickupService/internal/service/ledger"
)

// UseCase обработка проверенных событий платёжного провайдера.
// Единственный источник статуса paid у заказов.
type UseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	slotRepo    SlotRepository
	ledger      Ledger
	notifier    Notifier
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	slotRepo SlotRepository,
	ledger Ledger,
	notifier Notifier,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		slotRepo:    slotRepo,
		ledger:      ledger,
		notifier:    notifier,
		txManager:   txManager,
		location:    location,
		logger:      logger,
	}
}

// Execute обрабатывает событие. Повторная доставка того же события безопасна.
func (uc *UseCase) Execute(ctx context.Context, event *payments.Event) (*Result, error) {
	switch event.Type {
	// Отложенная оплата приходит как completed с unpaid, затем отдельным событием
	case payments.EventCheckoutCompleted, payments.EventCheckoutAsyncPaymentOK:
		return uc.completed(ctx, event)
	case payments.EventCheckoutExpired, payments.EventCheckoutAsyncPaymentFailed:
		return uc.expired(ctx, event)
	default:
		uc.logger.Info("CompletePayment: event=%s type=%s ignored", event.ID, event.Type)
		return &Result{Outcome: OutcomeIgnored}, nil
	}
}

func (uc *UseCase) completed(ctx context.Context, event *payments.Event) (*Result, error) {
	// 1. Валидация события
	session := event.Session
	if session == nil || session.ID == "" {
		uc.logger.Warn("CompletePayment: event=%s has no checkout session", event.ID)
		return nil, fmt.Errorf("%w: event=%s has no checkout session", ErrInvalidEvent, event.ID)
	}

	if session.PaymentStatus != paymentStatusPaid && session.PaymentStatus != paymentStatusNoPaymentRequired {
		// Отложенные способы оплаты: удержание дождётся оплаты или истечёт
		uc.logger.Info("CompletePayment: session=%s payment_status=%s, waiting for payment",
			session.ID, session.PaymentStatus)
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	md, err := parseMetadata(session.Metadata)
	if err != nil {
		uc.logger.Error("CompletePayment: session=%s: %v", session.ID, err)
		return nil, err
	}

	// 2. Подтверждаем удержание и записываем заказ в одной транзакции.
	// Уникальность payment_session_id делает повторную доставку откатом без побочных эффектов.
	var (
		order   *domain.Order
		confirm *ledger.ConfirmResult
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.orderRepo.GetByPaymentSessionID(txCtx, session.ID)
		if err == nil {
			order = existing
			return errDuplicate
		}
		if !errors.Is(err, orderRepo.ErrOrderNotFound) {
			return fmt.Errorf("%w: get order by session: %v", ErrInternal, err)
		}

		if md.HoldReference != nil {
			confirm, err = uc.ledger.ConfirmHold(txCtx, *md.HoldReference)
			if err != nil {
				return fmt.Errorf("%w: confirm hold: %v", ErrInternal, err)
			}
		}

		created, err := uc.orderRepo.Create(txCtx, &domain.Order{
			PaymentSessionID: session.ID,
			HoldReference:    md.HoldReference,
			ProductID:        md.ProductID,
			ProductSlug:      md.ProductSlug,
			Quantity:         md.Quantity,
			PickupSlotID:     md.PickupSlotID,
			CustomerName:     session.CustomerName,
			CustomerEmail:    session.CustomerEmail,
			TotalCents:       session.AmountTotal,
			Currency:         strings.ToUpper(session.Currency),
			Status:           domain.OrderStatusPaid,
			NeedsAttention:   confirm != nil && confirm.Oversold,
		})
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderAlreadyExists) {
				return errDuplicate
			}
			return fmt.Errorf("%w: create order: %v", ErrInternal, err)
		}

		order = created
		return nil
	})
	if err != nil {
		if errors.Is(err, errDuplicate) {
			uc.logger.Info("CompletePayment: session=%s already recorded, event=%s is a redelivery", session.ID, event.ID)
			res := &Result{Outcome: OutcomeDuplicate}
			if order != nil {
				res.OrderID = order.ID
				res.NeedsAttention = order.NeedsAttention
			}
			return res, nil
		}
		uc.logger.Error("CompletePayment: session=%s product=%s qty=%d slot=%s: %v",
			session.ID, md.ProductSlug, md.Quantity, formatSlot(md.PickupSlotID), err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if order.NeedsAttention {
		uc.logger.Warn("CompletePayment: order=%d paid but slot=%s was resold after the hold lapsed, needs staff attention",
			order.ID, formatSlot(order.PickupSlotID))
	}
	uc.logger.Info("CompletePayment: order=%d paid, session=%s product=%s qty=%d slot=%s",
		order.ID, session.ID, order.ProductSlug, order.Quantity, formatSlot(order.PickupSlotID))

	// 3. Письмо-подтверждение вне транзакции, ошибка не отменяет оплату
	uc.notify(ctx, order)

	return &Result{Outcome: OutcomeOrderCreated, OrderID: order.ID, NeedsAttention: order.NeedsAttention}, nil
}

func (uc *UseCase) expired(ctx context.Context, event *payments.Event) (*Result, error) {
	session := event.Session
	if session == nil {
		return nil, fmt.Errorf("%w: event=%s has no checkout session", ErrInvalidEvent, event.ID)
	}

	ref, ok := session.Metadata[payments.MetadataHoldReference]
	if !ok || ref == "" {
		uc.logger.Info("CompletePayment: %s session=%s had no pickup hold", event.Type, session.ID)
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	released, err := uc.ledger.ReleaseHold(ctx, ref)
	if err != nil {
		if errors.Is(err, ledger.ErrHoldNotFound) {
			uc.logger.Warn("CompletePayment: expired session=%s references unknown hold ref=%s", session.ID, ref)
			return &Result{Outcome: OutcomeIgnored}, nil
		}
		uc.logger.Error("CompletePayment: failed to release hold ref=%s for expired session=%s: %v", ref, session.ID, err)
		return nil, fmt.Errorf("%w: release hold: %v", ErrInternal, err)
	}

	if !released {
		return &Result{Outcome: OutcomeDuplicate}, nil
	}

	uc.logger.Info("CompletePayment: %s session=%s, hold ref=%s released", event.Type, session.ID, ref)
	return &Result{Outcome: OutcomeHoldReleased}, nil
}

// notify отправляет подтверждение, ошибки только логируются
func (uc *UseCase) notify(ctx context.Context, order *domain.Order) {
	msg := &email.OrderConfirmation{
		OrderID:       order.ID,
		To:            order.CustomerEmail,
		CustomerName:  order.CustomerName,
		ProductName:   order.ProductSlug,
		Quantity:      order.Quantity,
		TotalCents:    order.TotalCents,
		Currency:      order.Currency,
		NeedsFollowUp: order.NeedsAttention,
	}

	if product, err := uc.productRepo.GetBySlug(ctx, order.ProductSlug); err == nil {
		msg.ProductName = product.Name
	} else {
		uc.logger.Warn("CompletePayment: order=%d product=%s lookup for email failed: %v", order.ID, order.ProductSlug, err)
	}

	if order.PickupSlotID != nil && !order.NeedsAttention {
		if slot, err := uc.slotRepo.GetByID(ctx, *order.PickupSlotID); err == nil {
			pickupAt := slot.StartTS.In(uc.location)
			msg.PickupAt = &pickupAt
		} else {
			uc.logger.Warn("CompletePayment: order=%d slot=%d lookup for email failed: %v", order.ID, *order.PickupSlotID, err)
		}
	}

	if err := uc.notifier.SendOrderConfirmation(ctx, msg); err != nil {
		uc.logger.Error("CompletePayment: order=%d confirmation email failed: %v", order.ID, err)
	}
}

func formatSlot(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
