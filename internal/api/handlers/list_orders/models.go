package list_orders

import (
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	"github.com/m04kA/FarmStand-PickupService/internal/service/orders/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(dateStr, statusStr string) (*models.ListOrdersRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.ListOrdersRequest{Date: date}
	if statusStr != "" {
		req.Status = &statusStr
	}
	return req, nil
}
