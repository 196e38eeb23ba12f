package domain

import (
	"fmt"
	"time"
)

// GlobalSettings operator switches read on every checkout attempt
type GlobalSettings struct {
	PanicMode          bool
	AutoPauseThreshold int // percent, 0 disables auto-pause
	UpdatedAt          time.Time
}

// Validate checks the threshold range
func (s GlobalSettings) Validate() error {
	if s.AutoPauseThreshold < MinAutoPauseThreshold || s.AutoPauseThreshold > MaxAutoPauseThreshold {
		return fmt.Errorf("%w: auto_pause_threshold must be between %d and %d, got %d",
			ErrInvalidSettings, MinAutoPauseThreshold, MaxAutoPauseThreshold, s.AutoPauseThreshold)
	}
	return nil
}

// SettingsPatch partial update, nil fields are left unchanged
type SettingsPatch struct {
	PanicMode          *bool
	AutoPauseThreshold *int
}

// IsEmpty returns true if the patch changes nothing
func (p SettingsPatch) IsEmpty() bool {
	return p.PanicMode == nil && p.AutoPauseThreshold == nil
}

// Apply returns settings with the patch applied
func (p SettingsPatch) Apply(s GlobalSettings) GlobalSettings {
	if p.PanicMode != nil {
		s.PanicMode = *p.PanicMode
	}
	if p.AutoPauseThreshold != nil {
		s.AutoPauseThreshold = *p.AutoPauseThreshold
	}
	return s
}
