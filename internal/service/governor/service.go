package governor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	settingsRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/settings"
)

// Service допускает или отклоняет новые попытки оформления заказа.
// Проверка совещательная и не атомарна с резервированием: от перепродажи защищает журнал резервирований.
type Service struct {
	settingsRepo SettingsRepository
	slotRepo     SlotRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(settingsRepo SettingsRepository, slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// CheckAdmission проверяет panic mode, затем порог автопаузы по загрузке слотов дня.
// Настройки перечитываются при каждом вызове.
func (s *Service) CheckAdmission(ctx context.Context, day time.Time) (*Admission, error) {
	// 1. Читаем актуальные настройки
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("CheckAdmission: settings repository error: %v", err)
			return nil, fmt.Errorf("%w: CheckAdmission - settings repository error: %v", ErrInternal, err)
		}
		s.logger.Warn("CheckAdmission: global settings row is missing, using defaults")
		settings = &domain.GlobalSettings{}
	}

	// 2. Panic mode запрещает всё
	if settings.PanicMode {
		s.logger.Info("CheckAdmission: denied, panic mode is on")
		return &Admission{Allowed: false, Reason: ReasonPanicMode}, nil
	}

	// 3. Автопауза выключена
	if settings.AutoPauseThreshold <= 0 {
		return &Admission{Allowed: true}, nil
	}

	// 4. Сравниваем загрузку дня с порогом
	reserved, capacity, err := s.slotRepo.SumByDay(ctx, day)
	if err != nil {
		s.logger.Error("CheckAdmission: slot repository error for day=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: CheckAdmission - slot repository error: %v", ErrInternal, err)
	}

	admission := &Admission{Allowed: true, Reserved: reserved, Capacity: capacity}

	// reserved/capacity >= threshold/100 без деления
	if capacity > 0 && reserved*100 >= settings.AutoPauseThreshold*capacity {
		admission.Allowed = false
		admission.Reason = ReasonCapacityPaused
		s.logger.Info("CheckAdmission: denied, day=%s utilisation %d/%d reached threshold %d%%",
			day.Format(domain.DateFormat), reserved, capacity, settings.AutoPauseThreshold)
	}

	return admission, nil
}
