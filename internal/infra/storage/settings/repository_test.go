package settings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT panic_mode, auto_pause_threshold, updated_at FROM global_settings WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"panic_mode", "auto_pause_threshold", "updated_at"}).AddRow(true, 80, now))

	s, err := NewRepository(db).Get(context.Background())
	require.NoError(t, err)
	assert.True(t, s.PanicMode)
	assert.Equal(t, 80, s.AutoPauseThreshold)
}

func TestRepository_Get_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT panic_mode").
		WillReturnRows(sqlmock.NewRows([]string{"panic_mode", "auto_pause_threshold", "updated_at"}))

	_, err = NewRepository(db).Get(context.Background())
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO global_settings (id,panic_mode,auto_pause_threshold) VALUES ($1,$2,$3) ON CONFLICT (id) DO UPDATE")).
		WithArgs(1, false, 75).
		WillReturnRows(sqlmock.NewRows([]string{"panic_mode", "auto_pause_threshold", "updated_at"}).AddRow(false, 75, time.Now()))

	saved, err := NewRepository(db).Save(context.Background(), domain.GlobalSettings{AutoPauseThreshold: 75})
	require.NoError(t, err)
	assert.Equal(t, 75, saved.AutoPauseThreshold)
	assert.NoError(t, mock.ExpectationsWereMet())
}
