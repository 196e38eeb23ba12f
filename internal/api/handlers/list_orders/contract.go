package list_orders

import (
	"context"

	"github.com/m04kA/FarmStand-PickupService/internal/service/orders/models"
)

type OrderService interface {
	ListByPickupDate(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
