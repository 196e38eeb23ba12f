package governor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	settingsRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/settings"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type fakeSettings struct {
	settings *domain.GlobalSettings
	err      error
	calls    int
}

func (f *fakeSettings) Get(context.Context) (*domain.GlobalSettings, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.settings
	return &cp, nil
}

type fakeSlots struct {
	reserved, capacity int
	err                error
	calls              int
}

func (f *fakeSlots) SumByDay(context.Context, time.Time) (int, int, error) {
	f.calls++
	return f.reserved, f.capacity, f.err
}

func TestService_CheckAdmission(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		settings   domain.GlobalSettings
		slots      fakeSlots
		wantAllow  bool
		wantReason Reason
	}{
		{
			name:       "panic mode denies regardless of utilisation",
			settings:   domain.GlobalSettings{PanicMode: true, AutoPauseThreshold: 0},
			slots:      fakeSlots{reserved: 0, capacity: 10},
			wantAllow:  false,
			wantReason: ReasonPanicMode,
		},
		{
			name:       "at threshold denies",
			settings:   domain.GlobalSettings{AutoPauseThreshold: 80},
			slots:      fakeSlots{reserved: 8, capacity: 10},
			wantAllow:  false,
			wantReason: ReasonCapacityPaused,
		},
		{
			name:      "below threshold allows",
			settings:  domain.GlobalSettings{AutoPauseThreshold: 80},
			slots:     fakeSlots{reserved: 7, capacity: 10},
			wantAllow: true,
		},
		{
			name:      "threshold zero disables auto-pause",
			settings:  domain.GlobalSettings{AutoPauseThreshold: 0},
			slots:     fakeSlots{reserved: 10, capacity: 10},
			wantAllow: true,
		},
		{
			name:      "no slots today allows",
			settings:  domain.GlobalSettings{AutoPauseThreshold: 50},
			slots:     fakeSlots{},
			wantAllow: true,
		},
		{
			name:       "threshold 100 denies only when full",
			settings:   domain.GlobalSettings{AutoPauseThreshold: 100},
			slots:      fakeSlots{reserved: 10, capacity: 10},
			wantAllow:  false,
			wantReason: ReasonCapacityPaused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := tt.slots
			svc := NewService(&fakeSettings{settings: &tt.settings}, &slots, logger.NewNop())

			got, err := svc.CheckAdmission(context.Background(), day)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllow, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}

	t.Run("panic mode skips utilisation query", func(t *testing.T) {
		slots := &fakeSlots{}
		svc := NewService(&fakeSettings{settings: &domain.GlobalSettings{PanicMode: true, AutoPauseThreshold: 50}}, slots, logger.NewNop())

		_, err := svc.CheckAdmission(context.Background(), day)
		require.NoError(t, err)
		assert.Zero(t, slots.calls)
	})

	t.Run("settings are re-read on every call", func(t *testing.T) {
		settings := &fakeSettings{settings: &domain.GlobalSettings{}}
		svc := NewService(settings, &fakeSlots{}, logger.NewNop())

		first, err := svc.CheckAdmission(context.Background(), day)
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		settings.settings.PanicMode = true
		second, err := svc.CheckAdmission(context.Background(), day)
		require.NoError(t, err)
		assert.False(t, second.Allowed)
		assert.Equal(t, 2, settings.calls)
	})

	t.Run("missing settings row falls back to defaults", func(t *testing.T) {
		svc := NewService(&fakeSettings{err: settingsRepo.ErrSettingsNotFound}, &fakeSlots{}, logger.NewNop())

		got, err := svc.CheckAdmission(context.Background(), day)
		require.NoError(t, err)
		assert.True(t, got.Allowed)
	})

	t.Run("repository failure is internal error", func(t *testing.T) {
		svc := NewService(&fakeSettings{err: errors.New("timeout")}, &fakeSlots{}, logger.NewNop())

		_, err := svc.CheckAdmission(context.Background(), day)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
