package occupancy

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

// Repository сигналы занятости площадки по дням (таблица airbnb_occupancy)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сигнал занятости на день
func (r *Repository) Get(ctx context.Context, day time.Time) (*domain.OccupancySignal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("occupied").
		From("airbnb_occupancy").
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	signal := domain.OccupancySignal{Day: domain.DayOf(day)}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&signal.Occupied)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSignalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan signal: %v", ErrScanRow, err)
	}

	return &signal, nil
}

// Upsert записывает сигнал занятости, одна строка на день
func (r *Repository) Upsert(ctx context.Context, signal domain.OccupancySignal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("airbnb_occupancy").
		Columns("day", "occupied").
		Values(signal.Day.Format(domain.DateFormat), signal.Occupied).
		Suffix("ON CONFLICT (day) DO UPDATE SET occupied = EXCLUDED.occupied, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
