package get_available_slots

import (
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	getAvailableSlots "github.com/m04kA/FarmStand-PickupService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"availableSlots"`
}

// AvailableSlot модель слота выдачи
type AvailableSlot struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	Capacity    int    `json:"capacity"`
	Reserved    int    `json:"reserved"`
	Available   int    `json:"available"`
	DisplayTime string `json:"displayTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:          slot.ID,
			StartTime:   slot.StartTime.Format(time.RFC3339),
			Capacity:    slot.Capacity,
			Reserved:    slot.Reserved,
			Available:   slot.Available,
			DisplayTime: slot.StartTime.Format(domain.DisplayTimeFormat),
		}
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметра date
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}
