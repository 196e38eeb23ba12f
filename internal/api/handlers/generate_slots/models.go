package generate_slots

import (
	"strconv"

	generateSlots "github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
)

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Success       bool `json:"success"`
	SlotsCreated  int  `json:"slotsCreated"`
	DaysProcessed int  `json:"daysProcessed"`
}

// ToUseCaseRequest создает запрос use case из query параметра days (необязателен)
func ToUseCaseRequest(daysStr string) (*generateSlots.Request, error) {
	if daysStr == "" {
		return &generateSlots.Request{}, nil
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return nil, err
	}
	return &generateSlots.Request{WindowDays: days}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		Success:       true,
		SlotsCreated:  resp.SlotsCreated,
		DaysProcessed: resp.DaysProcessed,
	}
}
