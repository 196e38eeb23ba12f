package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/psqlbuilder"
)

// Repository справочник правил вместимости и шаблонов окон выдачи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRule получает правило вместимости для дня недели
func (r *Repository) GetRule(ctx context.Context, weekday time.Weekday) (*domain.CapacityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "base_pickups", "occupied_pickups").
		From("capacity_rules").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rule domain.CapacityRule
		day  int
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day, &rule.BasePickups, &rule.OccupiedPickups)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %v", ErrScanRow, err)
	}
	rule.Weekday = time.Weekday(day)

	return &rule, nil
}

// ListActiveWindows получает активные окна выдачи для дня недели, по времени начала
func (r *Repository) ListActiveWindows(ctx context.Context, weekday time.Weekday) ([]*domain.PickupWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "weekday", "start_time", "end_time", "slot_minutes", "active").
		From("pickup_windows").
		Where(squirrel.Eq{"weekday": int(weekday), "active": true}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.PickupWindow, 0)
	for rows.Next() {
		var (
			w   domain.PickupWindow
			day int
		)
		if err := rows.Scan(&w.ID, &day, &w.StartTime, &w.EndTime, &w.SlotMinutes, &w.Active); err != nil {
			return nil, fmt.Errorf("%w: ListActiveWindows - scan window: %v", ErrScanRow, err)
		}
		w.Weekday = time.Weekday(day)
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
