package order

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

var columns = []string{
	"o.id",
	"o.payment_session_id",
	"o.hold_reference",
	"o.product_id",
	"o.product_slug",
	"o.quantity",
	"o.pickup_slot_id",
	"o.customer_name",
	"o.customer_email",
	"o.total_cents",
	"o.currency",
	"o.status",
	"o.needs_attention",
	"o.created_at",
	"o.updated_at",
}

// Repository репозиторий для работы с заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ.
// Заказ на одну платёжную сессию записывается один раз: повторная вставка
// возвращает ErrOrderAlreadyExists (повторная доставка webhook).
func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"payment_session_id",
			"hold_reference",
			"product_id",
			"product_slug",
			"quantity",
			"pickup_slot_id",
			"customer_name",
			"customer_email",
			"total_cents",
			"currency",
			"status",
			"needs_attention",
		).
		Values(
			o.PaymentSessionID,
			o.HoldReference,
			o.ProductID,
			o.ProductSlug,
			o.Quantity,
			o.PickupSlotID,
			o.CustomerName,
			o.CustomerEmail,
			o.TotalCents,
			o.Currency,
			o.Status,
			o.NeedsAttention,
		).
		Suffix("ON CONFLICT (payment_session_id) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetByID получает заказ по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) для смены статуса.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("orders o").
		Where(squirrel.Eq{"o.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return o, nil
}

// GetByPaymentSessionID получает заказ по ID платёжной сессии
func (r *Repository) GetByPaymentSessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("orders o").
		Where(squirrel.Eq{"o.payment_session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentSessionID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentSessionID - scan order: %v", ErrScanRow, err)
	}

	return o, nil
}

// ListByPickupDate получает заказы, слот выдачи которых приходится на день.
// Сортировка по времени слота, затем по ID заказа.
func (r *Repository) ListByPickupDate(ctx context.Context, day time.Time, status *domain.OrderStatus) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("orders o").
		Join("pickup_slots s ON s.id = o.pickup_slot_id").
		Where(squirrel.Eq{"s.day": day.Format(domain.DateFormat)}).
		OrderBy("s.start_ts ASC", "o.id ASC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPickupDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPickupDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPickupDate - scan order: %v", ErrScanRow, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPickupDate - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o             domain.Order
		holdReference sql.NullString
		pickupSlotID  sql.NullInt64
	)

	if err := row.Scan(
		&o.ID,
		&o.PaymentSessionID,
		&holdReference,
		&o.ProductID,
		&o.ProductSlug,
		&o.Quantity,
		&pickupSlotID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.NeedsAttention,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if holdReference.Valid {
		o.HoldReference = &holdReference.String
	}
	if pickupSlotID.Valid {
		o.PickupSlotID = &pickupSlotID.Int64
	}

	return &o, nil
}
