package product

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetBySlug(t *testing.T) {
	selectSQL := regexp.QuoteMeta("SELECT id, slug, name, price_cents, currency, max_per_order, in_stock, active FROM products WHERE slug = $1")
	cols := []string{"id", "slug", "name", "price_cents", "currency", "max_per_order", "in_stock", "active"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectSQL).
			WithArgs("eggs-dozen").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(3), "eggs-dozen", "Eggs (dozen)", int64(800), "usd", 4, true, true))

		p, err := NewRepository(db).GetBySlug(context.Background(), "eggs-dozen")
		require.NoError(t, err)
		assert.Equal(t, int64(800), p.PriceCents)
		assert.Equal(t, 4, p.MaxPerOrder)
		assert.True(t, p.IsPurchasable())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectSQL).
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err = NewRepository(db).GetBySlug(context.Background(), "unknown")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
