package models

import (
	"errors"
	"time"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// ListOrdersRequest заказы на день выдачи
type ListOrdersRequest struct {
	Date   time.Time
	Status *string
}

// UpdateStatusRequest смена статуса заказа сотрудником
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID               int64     `json:"id"`
	PaymentSessionID string    `json:"paymentSessionId"`
	ProductID        int64     `json:"productId"`
	ProductSlug      string    `json:"productSlug"`
	Quantity         int       `json:"quantity"`
	PickupSlotID     *int64    `json:"pickupSlotId,omitempty"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	TotalCents       int64     `json:"totalCents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	NeedsAttention   bool      `json:"needsAttention"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:               o.ID,
		PaymentSessionID: o.PaymentSessionID,
		ProductID:        o.ProductID,
		ProductSlug:      o.ProductSlug,
		Quantity:         o.Quantity,
		PickupSlotID:     o.PickupSlotID,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		TotalCents:       o.TotalCents,
		Currency:         o.Currency,
		Status:           string(o.Status),
		NeedsAttention:   o.NeedsAttention,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}

// ToDomainOrderStatus конвертирует строку в domain.OrderStatus с валидацией
func ToDomainOrderStatus(status string) (domain.OrderStatus, error) {
	s := domain.OrderStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
