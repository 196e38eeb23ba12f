package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	settingsRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/settings"
	"github.com/m04kA/FarmStand-PickupService/internal/service/settings/models"
)

// Service сервис глобальных настроек (panic mode, порог автопаузы)
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает текущие настройки.
// Если строка настроек отсутствует, возвращаются значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Get: settings repository error: %v", err)
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// Update применяет частичное обновление настроек
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	patch := req.ToDomainPatch()

	// 1. Пустое обновление не допускается
	if patch.IsEmpty() {
		s.logger.Warn("Update: empty settings patch")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var saved *domain.GlobalSettings

	// 2. Читаем с блокировкой, применяем и сохраняем в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.load(txCtx)
		if err != nil {
			return err
		}

		next := patch.Apply(*current)
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		saved, err = s.settingsRepo.Save(txCtx, next)
		if err != nil {
			return fmt.Errorf("%w: Update - save settings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: validation failed: %v", err)
		} else {
			s.logger.Error("Update: failed to update settings: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Update: settings updated panic_mode=%t auto_pause_threshold=%d",
		saved.PanicMode, saved.AutoPauseThreshold)
	return models.FromDomainSettings(saved), nil
}

func (s *Service) load(ctx context.Context) (*domain.GlobalSettings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("settings row is missing, using defaults")
			return &domain.GlobalSettings{}, nil
		}
		return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}
	return current, nil
}
