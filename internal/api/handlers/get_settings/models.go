package get_settings

import "github.com/m04kA/FarmStand-PickupService/internal/service/settings/models"

// SettingsEnvelope HTTP response model
type SettingsEnvelope struct {
	Settings *models.SettingsResponse `json:"settings"`
}
