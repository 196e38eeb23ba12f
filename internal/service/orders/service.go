package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
	orderRepo "github.com/m04kA/FarmStand-PickupService/internal/infra/storage/order"
	"github.com/m04kA/FarmStand-PickupService/internal/service/orders/models"
)

// Service сервис для работы с заказами (для сотрудников)
type Service struct {
	orderRepo OrderRepository
	ledger    Ledger
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, ledger Ledger, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		ledger:    ledger,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает заказ по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrder(order), nil
}

// ListByPickupDate получает заказы на день выдачи, опционально фильтрует по статусу
func (s *Service) ListByPickupDate(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("ListByPickupDate: fetching orders for date=%s, status=%v", req.Date.Format(domain.DateFormat), req.Status)

	var domainStatus *domain.OrderStatus
	if req.Status != nil {
		status, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByPickupDate: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	orders, err := s.orderRepo.ListByPickupDate(ctx, req.Date, domainStatus)
	if err != nil {
		s.logger.Error("ListByPickupDate: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByPickupDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPickupDate: fetched %d orders for date=%s", len(orders), req.Date.Format(domain.DateFormat))
	return models.FromDomainOrderList(orders), nil
}

// UpdateStatus переводит заказ в ready, collected или canceled.
// Отмена возвращает места слота, если заказ их занимал.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: updating order id=%d to status=%s", id, req.Status)

	// 1. Валидируем статус
	next, err := models.ToDomainOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if next == domain.OrderStatusPending || next == domain.OrderStatusPaid {
		s.logger.Warn("UpdateStatus: status=%s cannot be set manually, order id=%d", next, id)
		return nil, ErrStatusNotAllowed
	}

	var updated *domain.Order

	// 2. Меняем статус и возвращаем места в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get order: %v", ErrInternal, err)
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, id, next); err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update status: %v", ErrInternal, err)
		}

		// Заказ без места (перепродажа после истечения удержания) ничего не занимает
		if next == domain.OrderStatusCanceled && order.HoldsSlotCapacity() && !order.NeedsAttention {
			if err := s.ledger.ReleaseConfirmed(txCtx, *order.PickupSlotID, order.Quantity); err != nil {
				return fmt.Errorf("%w: UpdateStatus - release slot: %v", ErrInternal, err)
			}
		}

		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			s.logger.Warn("UpdateStatus: order id=%d not found", id)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: order id=%d: %v", id, err)
		default:
			s.logger.Error("UpdateStatus: failed for order id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: order id=%d is now %s", id, next)
	return models.FromDomainOrder(updated), nil
}
