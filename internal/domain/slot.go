package domain

import (
	"fmt"
	"time"
)

// PickupSlot is a concrete, time-boxed pickup opportunity with finite capacity.
// Reserved never leaves [0, Capacity].
type PickupSlot struct {
	ID            int64
	Day           time.Time
	StartTS       time.Time
	Capacity      int
	Reserved      int
	HoldExpiresAt *time.Time // most recent active hold on the slot
	HeldBySession *string    // reference of that hold
	CreatedAt     time.Time
}

// NewPickupSlot builds a slot and checks its invariant
func NewPickupSlot(day, startTS time.Time, capacity, reserved int) (*PickupSlot, error) {
	s := &PickupSlot{
		Day:      DayOf(day),
		StartTS:  startTS,
		Capacity: capacity,
		Reserved: reserved,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks 0 <= Reserved <= Capacity
func (s *PickupSlot) Validate() error {
	if s.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidSlot, s.Capacity)
	}
	if s.Reserved < 0 {
		return fmt.Errorf("%w: negative reserved %d", ErrInvalidSlot, s.Reserved)
	}
	if s.Reserved > s.Capacity {
		return fmt.Errorf("%w: reserved %d exceeds capacity %d", ErrInvalidSlot, s.Reserved, s.Capacity)
	}
	return nil
}

// Available returns remaining capacity
func (s *PickupSlot) Available() int {
	if s.Reserved >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Reserved
}

// IsFull returns true if the slot has no remaining capacity
func (s *PickupSlot) IsFull() bool {
	return s.Available() == 0
}

// HasStarted returns true if the slot start is not after now
func (s *PickupSlot) HasStarted(now time.Time) bool {
	return !s.StartTS.After(now)
}

// HoldStatus status of a checkout hold
type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "active"
	HoldStatusConfirmed HoldStatus = "confirmed"
	HoldStatusReleased  HoldStatus = "released"
	HoldStatusExpired   HoldStatus = "expired"
)

// SlotHold is a temporary claim on slot capacity pending payment.
// Status only moves away from active, once.
type SlotHold struct {
	ID               int64
	Reference        string
	SlotID           int64
	Quantity         int
	Status           HoldStatus
	ExpiresAt        time.Time
	PaymentSessionID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive returns true while the hold still owns capacity pending payment
func (h *SlotHold) IsActive() bool {
	return h.Status == HoldStatusActive
}

// IsExpired returns true if the hold is active and its TTL has passed
func (h *SlotHold) IsExpired(now time.Time) bool {
	return h.IsActive() && !now.Before(h.ExpiresAt)
}
