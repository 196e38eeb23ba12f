package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/psqlbuilder"
)

// singletonID единственная строка global_settings
const singletonID = 1

// Repository репозиторий глобальных настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки
func (r *Repository) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("panic_mode", "auto_pause_threshold", "updated_at").
		From("global_settings").
		Where(squirrel.Eq{"id": singletonID})

	// Внутри транзакции блокируем строку, чтобы частичные обновления не перетирали друг друга
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.GlobalSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.PanicMode, &s.AutoPauseThreshold, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	return &s, nil
}

// Save записывает настройки, создавая строку при её отсутствии
func (r *Repository) Save(ctx context.Context, s domain.GlobalSettings) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("global_settings").
		Columns("id", "panic_mode", "auto_pause_threshold").
		Values(singletonID, s.PanicMode, s.AutoPauseThreshold).
		Suffix("ON CONFLICT (id) DO UPDATE SET panic_mode = EXCLUDED.panic_mode, " +
			"auto_pause_threshold = EXCLUDED.auto_pause_threshold, updated_at = NOW() " +
			"RETURNING panic_mode, auto_pause_threshold, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var saved domain.GlobalSettings
	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&saved.PanicMode,
		&saved.AutoPauseThreshold,
		&saved.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return &saved, nil
}
