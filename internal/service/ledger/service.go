package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	holdRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/hold"
	slotRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/slot"
)

// Service журнал резервирований: единственный путь изменения reserved у слотов.
// Все изменения reserved выполняются условным UPDATE в БД, без блокировок в процессе.
type Service struct {
	slotRepo     SlotRepository
	holdRepo     HoldRepository
	txManager    TransactionManager
	holdTTL      time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр журнала резервирований
func NewService(
	slotRepo SlotRepository,
	holdRepo HoldRepository,
	txManager TransactionManager,
	holdTTL time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	if holdTTL <= 0 {
		holdTTL = domain.DefaultHoldTTL
	}
	return &Service{
		slotRepo:     slotRepo,
		holdRepo:     holdRepo,
		txManager:    txManager,
		holdTTL:      holdTTL,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Reserve атомарно занимает qty мест в слоте.
// Нехватка мест не ошибка: возвращается false.
func (s *Service) Reserve(ctx context.Context, slotID int64, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}

	ok, err := s.slotRepo.Reserve(ctx, slotID, qty)
	if err != nil {
		s.metrics.ObserveReservation(resultError)
		s.logger.Error("Reserve: repository error for slot=%d qty=%d: %v", slotID, qty, err)
		return false, fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
	}

	if !ok {
		s.metrics.ObserveReservation(resultConflict)
		s.logger.Info("Reserve: slot=%d has no room for qty=%d", slotID, qty)
		return false, nil
	}

	s.metrics.ObserveReservation(resultReserved)
	return true, nil
}

// Release возвращает qty мест в слот, reserved не опускается ниже нуля
func (s *Service) Release(ctx context.Context, slotID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}

	if err := s.slotRepo.Release(ctx, slotID, qty); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Release: slot=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Release: repository error for slot=%d qty=%d: %v", slotID, qty, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Hold занимает места и создаёт удержание со сроком holdTTL.
// Возвращает false без ошибки, если мест не хватает.
func (s *Service) Hold(ctx context.Context, slotID int64, qty int) (*domain.SlotHold, bool, error) {
	if qty <= 0 {
		return nil, false, fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}

	now := s.timeProvider.Now()
	var hold *domain.SlotHold

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Атомарно занимаем места
		ok, err := s.Reserve(txCtx, slotID, qty)
		if err != nil || !ok {
			return err
		}

		// 2. Фиксируем удержание
		created, err := s.holdRepo.Create(txCtx, &domain.SlotHold{
			Reference: uuid.NewString(),
			SlotID:    slotID,
			Quantity:  qty,
			Status:    domain.HoldStatusActive,
			ExpiresAt: now.Add(s.holdTTL),
		})
		if err != nil {
			return fmt.Errorf("%w: Hold - create hold: %v", ErrInternal, err)
		}

		// 3. Помечаем слот последним удержанием
		if err := s.slotRepo.SetHoldMarker(txCtx, slotID, created.Reference, created.ExpiresAt); err != nil {
			return fmt.Errorf("%w: Hold - set hold marker: %v", ErrInternal, err)
		}

		hold = created
		return nil
	})
	if err != nil {
		s.logger.Error("Hold: failed for slot=%d qty=%d: %v", slotID, qty, err)
		return nil, false, err
	}

	if hold == nil {
		return nil, false, nil
	}

	s.logger.Info("Hold: slot=%d qty=%d held ref=%s until %s",
		slotID, qty, hold.Reference, hold.ExpiresAt.Format(time.RFC3339))
	return hold, true, nil
}

// AttachPaymentSession связывает удержание с платёжной сессией
func (s *Service) AttachPaymentSession(ctx context.Context, reference, sessionID string) error {
	if err := s.holdRepo.AttachPaymentSession(ctx, reference, sessionID); err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			return ErrHoldNotFound
		}
		s.logger.Error("AttachPaymentSession: ref=%s session=%s: %v", reference, sessionID, err)
		return fmt.Errorf("%w: AttachPaymentSession - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ReleaseHold компенсация: снимает активное удержание и возвращает места.
// Возвращает false, если удержание уже подтверждено, снято или истекло.
func (s *Service) ReleaseHold(ctx context.Context, reference string) (bool, error) {
	released, hold, err := s.finishHold(ctx, reference, domain.HoldStatusReleased)
	if err != nil {
		s.logger.Error("ReleaseHold: ref=%s: %v", reference, err)
		return false, err
	}

	if !released {
		s.logger.Info("ReleaseHold: ref=%s is no longer active, nothing to release", reference)
		return false, nil
	}

	s.metrics.ObserveHoldReleased(reasonReleased, hold.Quantity)
	s.logger.Info("ReleaseHold: ref=%s returned qty=%d to slot=%d", reference, hold.Quantity, hold.SlotID)
	return true, nil
}

// ConfirmHold переводит удержание в постоянное резервирование после оплаты.
// reserved не меняется: места заняты при удержании. Если удержание успело истечь,
// места занимаются заново; при нехватке мест результат помечается Oversold.
func (s *Service) ConfirmHold(ctx context.Context, reference string) (*ConfirmResult, error) {
	result := &ConfirmResult{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		hold, err := s.getHold(txCtx, reference)
		if err != nil {
			return err
		}
		result.Hold = hold

		if hold.Status == domain.HoldStatusActive {
			confirmed, err := s.holdRepo.Transition(txCtx, reference, domain.HoldStatusConfirmed)
			if err != nil {
				return fmt.Errorf("%w: ConfirmHold - transition: %v", ErrInternal, err)
			}
			if confirmed {
				hold.Status = domain.HoldStatusConfirmed
				if err := s.slotRepo.ClearHoldMarker(txCtx, hold.SlotID, reference); err != nil {
					return fmt.Errorf("%w: ConfirmHold - clear hold marker: %v", ErrInternal, err)
				}
				return nil
			}

			// Удержание только что сняла очистка, перечитываем статус
			if hold, err = s.getHold(txCtx, reference); err != nil {
				return err
			}
			result.Hold = hold
		}

		if hold.Status == domain.HoldStatusConfirmed {
			result.AlreadyConfirmed = true
			return nil
		}

		// Удержание истекло или снято, места уже вернулись в слот
		ok, err := s.Reserve(txCtx, hold.SlotID, hold.Quantity)
		if err != nil {
			return err
		}
		result.Reacquired = ok
		result.Oversold = !ok
		return nil
	})
	if err != nil {
		s.logger.Error("ConfirmHold: ref=%s: %v", reference, err)
		return nil, err
	}

	switch {
	case result.Oversold:
		s.logger.Warn("ConfirmHold: ref=%s lapsed (%s) and slot=%d is full, qty=%d needs staff attention",
			reference, result.Hold.Status, result.Hold.SlotID, result.Hold.Quantity)
	case result.Reacquired:
		s.logger.Warn("ConfirmHold: ref=%s lapsed (%s), re-reserved qty=%d on slot=%d",
			reference, result.Hold.Status, result.Hold.Quantity, result.Hold.SlotID)
	case result.AlreadyConfirmed:
		s.logger.Info("ConfirmHold: ref=%s already confirmed", reference)
	default:
		s.logger.Info("ConfirmHold: ref=%s confirmed qty=%d on slot=%d", reference, result.Hold.Quantity, result.Hold.SlotID)
	}

	return result, nil
}

// SweepExpiredHolds возвращает места всех активных удержаний с истёкшим сроком.
// Безопасна при параллельном запуске: каждое удержание снимает только один вызов.
func (s *Service) SweepExpiredHolds(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	swept := 0

	for {
		holds, err := s.holdRepo.ListExpired(ctx, now, sweepBatchSize)
		if err != nil {
			s.logger.Error("SweepExpiredHolds: list expired holds: %v", err)
			return swept, fmt.Errorf("%w: SweepExpiredHolds - list expired: %v", ErrInternal, err)
		}

		for _, h := range holds {
			expired, _, err := s.finishHold(ctx, h.Reference, domain.HoldStatusExpired)
			if err != nil {
				s.logger.Error("SweepExpiredHolds: ref=%s slot=%d: %v", h.Reference, h.SlotID, err)
				return swept, err
			}
			if !expired {
				continue
			}
			swept++
			s.metrics.ObserveHoldReleased(reasonExpired, h.Quantity)
			s.logger.Info("SweepExpiredHolds: ref=%s expired at %s, returned qty=%d to slot=%d",
				h.Reference, h.ExpiresAt.Format(time.RFC3339), h.Quantity, h.SlotID)
		}

		if len(holds) < sweepBatchSize {
			break
		}
	}

	if swept > 0 {
		s.logger.Info("SweepExpiredHolds: released %d expired hold(s)", swept)
	}
	return swept, nil
}

// ReleaseConfirmed возвращает места подтверждённого резервирования (отмена заказа)
func (s *Service) ReleaseConfirmed(ctx context.Context, slotID int64, qty int) error {
	if err := s.Release(ctx, slotID, qty); err != nil {
		return err
	}
	s.metrics.ObserveHoldReleased(reasonCanceled, qty)
	s.logger.Info("ReleaseConfirmed: returned qty=%d to slot=%d", qty, slotID)
	return nil
}

// finishHold переводит активное удержание в to и возвращает его места в слот.
// Переход условный, поэтому места возвращает ровно один из конкурирующих вызовов.
func (s *Service) finishHold(ctx context.Context, reference string, to domain.HoldStatus) (bool, *domain.SlotHold, error) {
	var (
		finished bool
		hold     *domain.SlotHold
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		h, err := s.getHold(txCtx, reference)
		if err != nil {
			return err
		}
		hold = h

		ok, err := s.holdRepo.Transition(txCtx, reference, to)
		if err != nil {
			return fmt.Errorf("%w: transition to %s: %v", ErrInternal, to, err)
		}
		if !ok {
			return nil
		}

		if err := s.Release(txCtx, h.SlotID, h.Quantity); err != nil {
			return err
		}
		if err := s.slotRepo.ClearHoldMarker(txCtx, h.SlotID, reference); err != nil {
			return fmt.Errorf("%w: clear hold marker: %v", ErrInternal, err)
		}

		finished = true
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	return finished, hold, nil
}

func (s *Service) getHold(ctx context.Context, reference string) (*domain.SlotHold, error) {
	hold, err := s.holdRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			return nil, fmt.Errorf("%w: ref=%s", ErrHoldNotFound, reference)
		}
		return nil, fmt.Errorf("%w: get hold ref=%s: %v", ErrInternal, reference, err)
	}
	return hold, nil
}
