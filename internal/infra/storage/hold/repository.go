package hold

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

const table = "slot_holds"

var columns = []string{
	"id",
	"reference",
	"slot_id",
	"quantity",
	"status",
	"expires_at",
	"payment_session_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий удержаний мест в слотах
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое удержание
func (r *Repository) Create(ctx context.Context, h *domain.SlotHold) (*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("reference", "slot_id", "quantity", "status", "expires_at").
		Values(h.Reference, h.SlotID, h.Quantity, h.Status, h.ExpiresAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByReference получает удержание по его reference
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan hold: %v", ErrScanRow, err)
	}

	return h, nil
}

// Transition переводит активное удержание в статус to.
// Возвращает false, если удержание уже не активно: переход выполняет только один из
// конкурирующих вызовов (подтверждение, компенсация или истечение).
func (r *Repository) Transition(ctx context.Context, reference string, to domain.HoldStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference, "status": domain.HoldStatusActive}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Transition - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// AttachPaymentSession сохраняет ID платёжной сессии на удержании
func (r *Repository) AttachPaymentSession(ctx context.Context, reference, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("payment_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachPaymentSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachPaymentSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachPaymentSession - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// ListExpired возвращает активные удержания с истёкшим сроком, самые старые первыми
func (r *Repository) ListExpired(ctx context.Context, now time.Time, limit uint64) ([]*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		OrderBy("expires_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.SlotHold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExpired - scan hold: %v", ErrScanRow, err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExpired - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.SlotHold, error) {
	var (
		h         domain.SlotHold
		sessionID sql.NullString
	)

	if err := row.Scan(
		&h.ID,
		&h.Reference,
		&h.SlotID,
		&h.Quantity,
		&h.Status,
		&h.ExpiresAt,
		&sessionID,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if sessionID.Valid {
		h.PaymentSessionID = &sessionID.String
	}

	return &h, nil
}
