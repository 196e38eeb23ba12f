package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	capacityRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/capacity"
	occupancyRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/occupancy"
)

// Service вычисляет вместимость дня по правилу дня недели и занятости площадки
type Service struct {
	ruleRepo      RuleRepository
	occupancyRepo OccupancyRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(ruleRepo RuleRepository, occupancyRepo OccupancyRepository, logger Logger) *Service {
	return &Service{
		ruleRepo:      ruleRepo,
		occupancyRepo: occupancyRepo,
		logger:        logger,
	}
}

// ResolveCapacity возвращает occupied_pickups, если площадка занята в этот день,
// иначе base_pickups. День без записи о занятости считается свободным.
func (s *Service) ResolveCapacity(ctx context.Context, day time.Time) (int, error) {
	weekday := day.Weekday()

	rule, err := s.ruleRepo.GetRule(ctx, weekday)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrRuleNotFound) {
			s.logger.Error("ResolveCapacity: no capacity rule for weekday=%d (%s)", weekday, weekday)
			return 0, fmt.Errorf("%w: weekday=%d", ErrConfiguration, weekday)
		}
		s.logger.Error("ResolveCapacity: rule repository error for weekday=%d: %v", weekday, err)
		return 0, fmt.Errorf("%w: ResolveCapacity - rule repository error: %v", ErrInternal, err)
	}

	occupied := false
	signal, err := s.occupancyRepo.Get(ctx, day)
	switch {
	case err == nil:
		occupied = signal.Occupied
	case errors.Is(err, occupancyRepo.ErrSignalNotFound):
		// нет данных о занятости - день свободен
	default:
		s.logger.Error("ResolveCapacity: occupancy repository error for day=%s: %v", day.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: ResolveCapacity - occupancy repository error: %v", ErrInternal, err)
	}

	return rule.CapacityFor(occupied), nil
}
