package order

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/pkg/ptr"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	insertSQL := regexp.QuoteMeta("INSERT INTO orders (payment_session_id,hold_reference,product_id,product_slug,quantity,pickup_slot_id,customer_name,customer_email,total_cents,currency,status,needs_attention) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) ON CONFLICT (payment_session_id) DO NOTHING RETURNING id, created_at, updated_at")

	newOrder := func() *domain.Order {
		return &domain.Order{
			PaymentSessionID: "cs_test_1",
			HoldReference:    ptr.Ptr("ref-1"),
			ProductID:        3,
			ProductSlug:      "eggs-dozen",
			Quantity:         2,
			PickupSlotID:     ptr.Ptr(int64(7)),
			CustomerEmail:    "jo@example.com",
			TotalCents:       1600,
			Currency:         "usd",
			Status:           domain.OrderStatusPaid,
		}
	}

	t.Run("created", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		now := time.Now()
		mock.ExpectQuery(insertSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

		created, err := repo.Create(context.Background(), newOrder())
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
	})

	t.Run("duplicate delivery", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(insertSQL).WillReturnError(sql.ErrNoRows)

		_, err := repo.Create(context.Background(), newOrder())
		assert.ErrorIs(t, err, ErrOrderAlreadyExists)
	})
}

func TestRepository_ListByPickupDate(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders o JOIN pickup_slots s ON s.id = o.pickup_slot_id WHERE s.day = $1 AND o.status = $2 ORDER BY s.start_ts ASC, o.id ASC")).
		WithArgs("2026-10-20", domain.OrderStatusPaid).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "payment_session_id", "hold_reference", "product_id", "product_slug", "quantity",
			"pickup_slot_id", "customer_name", "customer_email", "total_cents", "currency", "status",
			"needs_attention", "created_at", "updated_at",
		}).AddRow(int64(1), "cs_1", nil, int64(3), "eggs-dozen", 1, int64(7), "Jo", "jo@example.com", int64(800), "usd", "paid", false, now, now))

	status := domain.OrderStatusPaid
	orders, err := repo.ListByPickupDate(context.Background(), time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), &status)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].HoldReference)
	require.NotNil(t, orders[0].PickupSlotID)
	assert.Equal(t, int64(7), *orders[0].PickupSlotID)
	assert.Equal(t, domain.OrderStatusPaid, orders[0].Status)
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.OrderStatusReady, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 99, domain.OrderStatusReady), ErrOrderNotFound)
}
