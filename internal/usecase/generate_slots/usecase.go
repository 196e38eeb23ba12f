package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	capacityService "github.com/m04kA/FarmStand-PickupService/internal/service/capacity"
)

// UseCase генерация слотов выдачи на скользящее окно дней
type UseCase struct {
	capacity          CapacityResolver
	windowRepo        WindowRepository
	slotRepo          SlotRepository
	defaultWindowDays int
	location          *time.Location
	metrics           Metrics
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacity CapacityResolver,
	windowRepo WindowRepository,
	slotRepo SlotRepository,
	defaultWindowDays int,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if defaultWindowDays <= 0 {
		defaultWindowDays = domain.DefaultGenerateWindowDays
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		capacity:          capacity,
		windowRepo:        windowRepo,
		slotRepo:          slotRepo,
		defaultWindowDays: defaultWindowDays,
		location:          location,
		metrics:           metrics,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute создаёт недостающие слоты на windowDays дней начиная с сегодняшнего.
// Существующие слоты не изменяются, поэтому повторный запуск безопасен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	windowDays := req.WindowDays
	if windowDays == 0 {
		windowDays = uc.defaultWindowDays
	}
	if windowDays < 0 || windowDays > domain.MaxGenerateWindowDays {
		uc.logger.Warn("GenerateSlots: invalid window days=%d", windowDays)
		return nil, fmt.Errorf("%w: window days must be between 1 and %d", ErrInvalidInput, domain.MaxGenerateWindowDays)
	}

	today := domain.DayOf(uc.timeProvider.Now().In(uc.location))
	uc.logger.Info("GenerateSlots: from=%s, days=%d", today.Format(domain.DateFormat), windowDays)

	resp := &Response{}

	// 2. Обходим дни окна
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, i)

		created, err := uc.generateDay(ctx, day)
		// Слоты, вставленные до ошибки, уже в БД
		resp.SlotsCreated += created
		if err != nil {
			uc.metrics.AddSlotsGenerated(resp.SlotsCreated)
			return nil, err
		}

		resp.DaysProcessed++
	}

	// 3. Учитываем результат
	uc.metrics.AddSlotsGenerated(resp.SlotsCreated)

	uc.logger.Info("GenerateSlots: created %d slots over %d days", resp.SlotsCreated, resp.DaysProcessed)
	return resp, nil
}

func (uc *UseCase) generateDay(ctx context.Context, day time.Time) (int, error) {
	dateStr := day.Format(domain.DateFormat)

	// Вместимость дня; отсутствие правила - ошибка конфигурации, день не пропускаем
	capacity, err := uc.capacity.ResolveCapacity(ctx, day)
	if err != nil {
		if errors.Is(err, capacityService.ErrConfiguration) {
			uc.logger.Error("GenerateSlots: no capacity rule for %s (%s)", dateStr, day.Weekday())
			return 0, fmt.Errorf("%w: %s: %v", ErrConfiguration, day.Weekday(), err)
		}
		uc.logger.Error("GenerateSlots: failed to resolve capacity for %s: %v", dateStr, err)
		return 0, fmt.Errorf("%w: failed to resolve capacity: %v", ErrInternal, err)
	}

	windows, err := uc.windowRepo.ListActiveWindows(ctx, day.Weekday())
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list windows for %s: %v", dateStr, err)
		return 0, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}

	created := 0
	for _, w := range windows {
		starts, err := w.SlotStarts(day)
		if err != nil {
			uc.logger.Warn("GenerateSlots: skipping window id=%d on %s: %v", w.ID, dateStr, err)
			continue
		}

		for _, start := range starts {
			slot, err := domain.NewPickupSlot(day, start, capacity, 0)
			if err != nil {
				return created, fmt.Errorf("%w: %v", ErrInternal, err)
			}

			inserted, err := uc.slotRepo.CreateIfNotExists(ctx, slot)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to create slot %s: %v", start.Format(time.RFC3339), err)
				return created, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}
			if inserted {
				created++
			}
		}
	}

	return created, nil
}
