package sync_occupancy

import syncOccupancy "github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"

// SyncOccupancyResponse HTTP response model
type SyncOccupancyResponse struct {
	Success      bool `json:"success"`
	DaysSynced   int  `json:"daysSynced"`
	DaysOccupied int  `json:"daysOccupied"`
	Events       int  `json:"events"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncOccupancy.Response) *SyncOccupancyResponse {
	return &SyncOccupancyResponse{
		Success:      true,
		DaysSynced:   resp.DaysSynced,
		DaysOccupied: resp.DaysOccupied,
		Events:       resp.Events,
	}
}
