package sync_occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/internal/integrations/calendar"
)

// UseCase обновляет сигналы занятости площадки по iCal фиду
type UseCase struct {
	calendar          CalendarClient
	occupancyRepo     OccupancyRepository
	defaultWindowDays int
	location          *time.Location
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar CalendarClient,
	occupancyRepo OccupancyRepository,
	defaultWindowDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if defaultWindowDays <= 0 {
		defaultWindowDays = domain.DefaultOccupancyWindowDays
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		calendar:          calendar,
		occupancyRepo:     occupancyRepo,
		defaultWindowDays: defaultWindowDays,
		location:          location,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute записывает по одной строке на каждый день окна.
// Дни без событий записываются как свободные, чтобы снятая бронь площадки тоже отражалась.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = uc.defaultWindowDays
	}

	// 1. Получаем события фида
	events, err := uc.calendar.FetchEvents(ctx)
	if err != nil {
		uc.logger.Error("SyncOccupancy: failed to fetch calendar feed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	today := domain.DayOf(uc.timeProvider.Now().In(uc.location))
	resp := &Response{Events: len(events)}

	// 2. Размечаем дни окна
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, i)
		occupied := uc.isOccupied(events, day)

		if err := uc.occupancyRepo.Upsert(ctx, domain.OccupancySignal{Day: day, Occupied: occupied}); err != nil {
			uc.logger.Error("SyncOccupancy: failed to upsert day=%s: %v", day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: upsert occupancy: %v", ErrInternal, err)
		}

		resp.DaysSynced++
		if occupied {
			resp.DaysOccupied++
		}
	}

	uc.logger.Info("SyncOccupancy: %d events, %d of %d days occupied from %s",
		resp.Events, resp.DaysOccupied, resp.DaysSynced, today.Format(domain.DateFormat))
	return resp, nil
}

// isOccupied true, если хотя бы одно событие пересекает день [day, day+1)
func (uc *UseCase) isOccupied(events []calendar.Event, day time.Time) bool {
	dayEnd := day.AddDate(0, 0, 1)

	for _, e := range events {
		start, end := uc.bounds(e)
		if end.Equal(start) {
			if !start.Before(day) && start.Before(dayEnd) {
				return true
			}
			continue
		}
		if start.Before(dayEnd) && end.After(day) {
			return true
		}
	}
	return false
}

// bounds границы события в часовом поясе площадки.
// Даты событий на весь день переносятся в часовой пояс площадки без сдвига.
func (uc *UseCase) bounds(e calendar.Event) (time.Time, time.Time) {
	if !e.AllDay {
		return e.Start.In(uc.location), e.End.In(uc.location)
	}
	return onDate(e.Start, uc.location), onDate(e.End, uc.location)
}

func onDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
