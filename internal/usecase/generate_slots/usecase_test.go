package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	capacityService "github.com/m04kA/FarmStand-PickupService/internal/service/capacity"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type fakeCapacity struct {
	byWeekday map[time.Weekday]int
	err       error
}

func (f *fakeCapacity) ResolveCapacity(_ context.Context, day time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	c, ok := f.byWeekday[day.Weekday()]
	if !ok {
		return 0, fmt.Errorf("%w: weekday=%d", capacityService.ErrConfiguration, day.Weekday())
	}
	return c, nil
}

type fakeWindows map[time.Weekday][]*domain.PickupWindow

func (f fakeWindows) ListActiveWindows(_ context.Context, weekday time.Weekday) ([]*domain.PickupWindow, error) {
	return f[weekday], nil
}

type memSlots struct {
	slots map[int64]*domain.PickupSlot // ключ - unix время начала
}

func newMemSlots() *memSlots {
	return &memSlots{slots: make(map[int64]*domain.PickupSlot)}
}

func (m *memSlots) CreateIfNotExists(_ context.Context, s *domain.PickupSlot) (bool, error) {
	key := s.StartTS.Unix()
	if _, ok := m.slots[key]; ok {
		return false, nil
	}
	cp := *s
	cp.ID = int64(len(m.slots) + 1)
	m.slots[key] = &cp
	return true, nil
}

// failingSlots отказывает после failAfter успешных вставок
type failingSlots struct {
	*memSlots
	failAfter int
}

func (f *failingSlots) CreateIfNotExists(ctx context.Context, s *domain.PickupSlot) (bool, error) {
	if len(f.slots) >= f.failAfter {
		return false, errors.New("connection reset")
	}
	return f.memSlots.CreateIfNotExists(ctx, s)
}

type countingMetrics struct{ generated int }

func (c *countingMetrics) AddSlotsGenerated(n int) { c.generated += n }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func allWeekdays(capacity int) map[time.Weekday]int {
	m := make(map[time.Weekday]int, domain.DaysInWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		m[d] = capacity
	}
	return m
}

func newTestUseCase(t *testing.T, capacity CapacityResolver, windows fakeWindows, slots SlotRepository, metrics Metrics) *UseCase {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	uc := NewUseCase(capacity, windows, slots, 14, loc, metrics, logger.NewNop())
	// понедельник, 2026-10-19 07:30 по местному времени
	uc.timeProvider = fixedClock{now: time.Date(2026, 10, 19, 7, 30, 0, 0, loc)}
	return uc
}

func TestUseCase_Execute_TuesdayWindow(t *testing.T) {
	capacity := &fakeCapacity{byWeekday: allWeekdays(10)}
	windows := fakeWindows{
		time.Tuesday: {{ID: 1, Weekday: time.Tuesday, StartTime: "09:00", EndTime: "10:00", SlotMinutes: 20, Active: true}},
	}
	slots := newMemSlots()
	metrics := &countingMetrics{}

	uc := newTestUseCase(t, capacity, windows, slots, metrics)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, 2, resp.DaysProcessed)
	assert.Equal(t, 3, metrics.generated)

	var got []string
	for _, s := range slots.slots {
		assert.Equal(t, 10, s.Capacity)
		assert.Equal(t, 0, s.Reserved)
		assert.Equal(t, "2026-10-20", s.Day.Format(domain.DateFormat))
		got = append(got, s.StartTS.Format(domain.TimeFormat))
	}
	assert.ElementsMatch(t, []string{"09:00", "09:20", "09:40"}, got)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	capacity := &fakeCapacity{byWeekday: allWeekdays(10)}
	windows := fakeWindows{
		time.Tuesday:  {{ID: 1, StartTime: "09:00", EndTime: "10:00", SlotMinutes: 20, Active: true}},
		time.Saturday: {{ID: 2, StartTime: "08:00", EndTime: "12:00", SlotMinutes: 30, Active: true}},
	}
	slots := newMemSlots()
	uc := newTestUseCase(t, capacity, windows, slots, &countingMetrics{})

	first, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 14, first.DaysProcessed)
	// два вторника и две субботы в окне
	assert.Equal(t, 2*3+2*8, first.SlotsCreated)

	// резервирование не должно сбрасываться повторной генерацией
	for _, s := range slots.slots {
		s.Reserved = 4
		break
	}
	snapshot := make(map[int64]domain.PickupSlot, len(slots.slots))
	for k, s := range slots.slots {
		snapshot[k] = *s
	}

	second, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.SlotsCreated)
	assert.Len(t, slots.slots, len(snapshot))
	for k, s := range slots.slots {
		assert.Equal(t, snapshot[k], *s)
	}
}

func TestUseCase_Execute_InvalidWindowSkipped(t *testing.T) {
	capacity := &fakeCapacity{byWeekday: allWeekdays(5)}
	windows := fakeWindows{
		time.Tuesday: {
			{ID: 1, StartTime: "09:00", EndTime: "09:00", SlotMinutes: 20, Active: true},
			{ID: 2, StartTime: "09:00", EndTime: "10:00", SlotMinutes: 0, Active: true},
			{ID: 3, StartTime: "14:00", EndTime: "15:00", SlotMinutes: 25, Active: true},
		},
	}
	slots := newMemSlots()
	uc := newTestUseCase(t, capacity, windows, slots, &countingMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.SlotsCreated)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("missing capacity rule fails the run", func(t *testing.T) {
		byWeekday := allWeekdays(10)
		delete(byWeekday, time.Wednesday)

		metrics := &countingMetrics{}
		windows := fakeWindows{
			time.Tuesday: {{ID: 1, StartTime: "09:00", EndTime: "10:00", SlotMinutes: 20, Active: true}},
		}
		uc := newTestUseCase(t, &fakeCapacity{byWeekday: byWeekday}, windows, newMemSlots(), metrics)

		_, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
		assert.ErrorIs(t, err, ErrConfiguration)
		// вторник успел сгенерироваться до ошибки
		assert.Equal(t, 3, metrics.generated)
	})

	t.Run("slots inserted before a store failure are counted", func(t *testing.T) {
		metrics := &countingMetrics{}
		windows := fakeWindows{
			time.Tuesday: {{ID: 1, StartTime: "09:00", EndTime: "10:00", SlotMinutes: 20, Active: true}},
		}
		slots := &failingSlots{memSlots: newMemSlots(), failAfter: 2}
		uc := newTestUseCase(t, &fakeCapacity{byWeekday: allWeekdays(10)}, windows, slots, metrics)

		_, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Len(t, slots.slots, 2)
		assert.Equal(t, 2, metrics.generated)
	})

	t.Run("resolver failure", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeCapacity{err: errors.New("db down")}, fakeWindows{}, newMemSlots(), &countingMetrics{})

		_, err := uc.Execute(context.Background(), &Request{WindowDays: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("window too large", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeCapacity{byWeekday: allWeekdays(1)}, fakeWindows{}, newMemSlots(), &countingMetrics{})

		_, err := uc.Execute(context.Background(), &Request{WindowDays: domain.MaxGenerateWindowDays + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
