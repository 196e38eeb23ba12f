package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// UseCase use case для получения доступных слотов выдачи на день
type UseCase struct {
	slotRepo     SlotRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotRepo:     slotRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и запрошенный день в часовом поясе площадки
	now := uc.timeProvider.Now().In(uc.location)
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	if err := validateDate(day, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 3. Получаем слоты дня
	slots, err := uc.slotRepo.GetByDay(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for date=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 4. Оставляем будущие слоты со свободными местами
	resp := &Response{
		Date:  day,
		Slots: make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		if s.IsFull() || s.HasStarted(now) {
			continue
		}
		resp.Slots = append(resp.Slots, Slot{
			ID:        s.ID,
			StartTime: s.StartTS.In(uc.location),
			Capacity:  s.Capacity,
			Reserved:  s.Reserved,
			Available: s.Available(),
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d of %d slots available",
		day.Format(domain.DateFormat), len(resp.Slots), len(slots))
	return resp, nil
}
