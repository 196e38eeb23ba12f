package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	holdRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/hold"
	slotRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/slot"
)

// memStore слоты и удержания в памяти с теми же условными переходами, что и SQL
type memStore struct {
	mu     sync.Mutex
	slots  map[int64]*domain.PickupSlot
	holds  map[string]*domain.SlotHold
	nextID int64
}

func newMemStore(slots ...*domain.PickupSlot) *memStore {
	st := &memStore{
		slots: make(map[int64]*domain.PickupSlot),
		holds: make(map[string]*domain.SlotHold),
	}
	for _, s := range slots {
		st.slots[s.ID] = s
	}
	return st
}

func (m *memStore) reserved(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id].Reserved
}

func (m *memStore) Reserve(_ context.Context, id int64, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok || s.Reserved+qty > s.Capacity {
		return false, nil
	}
	s.Reserved += qty
	return true, nil
}

func (m *memStore) Release(_ context.Context, id int64, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Reserved = max(s.Reserved-qty, 0)
	return nil
}

func (m *memStore) SetHoldMarker(_ context.Context, id int64, reference string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.slots[id]
	s.HeldBySession = &reference
	s.HoldExpiresAt = &expiresAt
	return nil
}

func (m *memStore) ClearHoldMarker(_ context.Context, id int64, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.slots[id]
	if s.HeldBySession != nil && *s.HeldBySession == reference {
		s.HeldBySession = nil
		s.HoldExpiresAt = nil
	}
	return nil
}

func (m *memStore) Create(_ context.Context, h *domain.SlotHold) (*domain.SlotHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	h.ID = m.nextID
	cp := *h
	m.holds[h.Reference] = &cp
	return h, nil
}

func (m *memStore) GetByReference(_ context.Context, reference string) (*domain.SlotHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[reference]
	if !ok {
		return nil, holdRepo.ErrHoldNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memStore) Transition(_ context.Context, reference string, to domain.HoldStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[reference]
	if !ok || h.Status != domain.HoldStatusActive {
		return false, nil
	}
	h.Status = to
	return true, nil
}

func (m *memStore) AttachPaymentSession(_ context.Context, reference, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[reference]
	if !ok {
		return holdRepo.ErrHoldNotFound
	}
	h.PaymentSessionID = &sessionID
	return nil
}

func (m *memStore) ListExpired(_ context.Context, now time.Time, limit uint64) ([]*domain.SlotHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.SlotHold
	for _, h := range m.holds {
		if h.Status == domain.HoldStatusActive && !h.ExpiresAt.After(now) {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// passthroughTx выполняет fn без транзакции
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type recordingMetrics struct {
	mu           sync.Mutex
	reservations map[string]int
	released     map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{reservations: map[string]int{}, released: map[string]int{}}
}

func (r *recordingMetrics) ObserveReservation(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations[result]++
}

func (r *recordingMetrics) ObserveHoldReleased(reason string, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released[reason] += qty
}
