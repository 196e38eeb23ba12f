package update_settings

import "github.com/m04kA/FarmStand-PickupService/internal/service/settings/models"

// UpdateSettingsRequest HTTP request model, принимает как плоское тело,
// так и тело в обёртке {"settings": {...}}
type UpdateSettingsRequest struct {
	PanicMode          *bool                         `json:"panic_mode,omitempty"`
	AutoPauseThreshold *int                          `json:"auto_pause_threshold,omitempty"`
	Settings           *models.UpdateSettingsRequest `json:"settings,omitempty"`
}

// SettingsEnvelope HTTP response model
type SettingsEnvelope struct {
	Settings *models.SettingsResponse `json:"settings"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	if r.Settings != nil {
		return r.Settings
	}
	return &models.UpdateSettingsRequest{
		PanicMode:          r.PanicMode,
		AutoPauseThreshold: r.AutoPauseThreshold,
	}
}
