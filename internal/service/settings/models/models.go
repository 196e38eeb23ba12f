package models

import "github.com/m04kA/FarmStand-PickupService/internal/domain"

// UpdateSettingsRequest частичное обновление настроек.
// Обновляются только переданные поля.
type UpdateSettingsRequest struct {
	PanicMode          *bool `json:"panic_mode,omitempty"`
	AutoPauseThreshold *int  `json:"auto_pause_threshold,omitempty"`
}

// ToDomainPatch конвертирует запрос в domain.SettingsPatch
func (r *UpdateSettingsRequest) ToDomainPatch() domain.SettingsPatch {
	return domain.SettingsPatch{
		PanicMode:          r.PanicMode,
		AutoPauseThreshold: r.AutoPauseThreshold,
	}
}

// SettingsResponse текущие настройки
type SettingsResponse struct {
	PanicMode          bool `json:"panic_mode"`
	AutoPauseThreshold int  `json:"auto_pause_threshold"`
}

// FromDomainSettings конвертирует domain.GlobalSettings в ответ
func FromDomainSettings(s *domain.GlobalSettings) *SettingsResponse {
	return &SettingsResponse{
		PanicMode:          s.PanicMode,
		AutoPauseThreshold: s.AutoPauseThreshold,
	}
}
