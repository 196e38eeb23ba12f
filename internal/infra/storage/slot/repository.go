package slot

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

const table = "pickup_slots"

var columns = []string{
	"id",
	"day",
	"start_ts",
	"capacity",
	"reserved",
	"hold_expires_at",
	"held_by_session",
	"created_at",
}

// Repository репозиторий слотов выдачи.
// Единственное место, где изменяется счётчик reserved.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfNotExists вставляет слот, если слота с такими (day, start_ts) ещё нет.
// Существующий слот не изменяется: его capacity и reserved сохраняются.
// Возвращает true, если слот был создан.
func (r *Repository) CreateIfNotExists(ctx context.Context, s *domain.PickupSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day", "start_ts", "capacity", "reserved").
		Values(s.Day.Format(domain.DateFormat), s.StartTS, s.Capacity, s.Reserved).
		Suffix("ON CONFLICT (day, start_ts) DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByDay получает все слоты дня, отсортированные по времени начала
func (r *Repository) GetByDay(ctx context.Context, day time.Time) ([]*domain.PickupSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		OrderBy("start_ts ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.PickupSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDay - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDay - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// SumByDay возвращает суммарные reserved и capacity по всем слотам дня
func (r *Repository) SumByDay(ctx context.Context, day time.Time) (reserved int, capacity int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(reserved), 0)", "COALESCE(SUM(capacity), 0)").
		From(table).
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: SumByDay - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&reserved, &capacity); err != nil {
		return 0, 0, fmt.Errorf("%w: SumByDay - scan sums: %v", ErrScanRow, err)
	}

	return reserved, capacity, nil
}

// Reserve атомарно увеличивает reserved на qty, если после этого reserved <= capacity.
// Проверка и инкремент выполняются одним условным UPDATE, поэтому из двух
// конкурентных вызовов на последнее место успешен ровно один.
// Нехватка мест не ошибка: возвращается false.
func (r *Repository) Reserve(ctx context.Context, id int64, qty int) (bool, error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("reserved", squirrel.Expr("reserved + ?", qty)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("reserved + ? <= capacity", qty)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release уменьшает reserved на qty, не опускаясь ниже нуля
func (r *Repository) Release(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("reserved", squirrel.Expr("GREATEST(reserved - ?, 0)", qty)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetHoldMarker отмечает на слоте последнее активное удержание
func (r *Repository) SetHoldMarker(ctx context.Context, id int64, reference string, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("hold_expires_at", expiresAt).
		Set("held_by_session", reference).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetHoldMarker - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetHoldMarker - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ClearHoldMarker снимает отметку удержания, если она принадлежит reference.
// Отметка более позднего удержания на том же слоте не затрагивается.
func (r *Repository) ClearHoldMarker(ctx context.Context, id int64, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("hold_expires_at", nil).
		Set("held_by_session", nil).
		Where(squirrel.Eq{"id": id, "held_by_session": reference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearHoldMarker - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearHoldMarker - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.PickupSlot, error) {
	var (
		s             domain.PickupSlot
		holdExpiresAt sql.NullTime
		heldBySession sql.NullString
	)

	if err := row.Scan(
		&s.ID,
		&s.Day,
		&s.StartTS,
		&s.Capacity,
		&s.Reserved,
		&holdExpiresAt,
		&heldBySession,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}

	if holdExpiresAt.Valid {
		s.HoldExpiresAt = &holdExpiresAt.Time
	}
	if heldBySession.Valid {
		s.HeldBySession = &heldBySession.String
	}

	return &s, nil
}
