package order

import (
	"context"

	appcheckout "github.com/bookhaven/backend/internal/application/checkout"
	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order history and fulfillment status changes
type OrderService struct {
	orderRepo order.OrderRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.OrderRepository, publisher shared.EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListOrders returns the user's order history, most recent first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[appcheckout.OrderConfirmationDTO], error) {
	page, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Order history query failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load orders")
	}

	dtos := make([]appcheckout.OrderConfirmationDTO, len(page.Items))
	for i := range page.Items {
		dtos[i] = *appcheckout.ToOrderConfirmationDTO(&page.Items[i])
	}
	result := shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// GetOrder returns one of the user's orders. Another user's order reads as
// not found, not forbidden, so order IDs cannot be probed.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*appcheckout.OrderConfirmationDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	return appcheckout.ToOrderConfirmationDTO(o), nil
}

// GetOrderByNumber looks an order up by its six digit number
func (s *OrderService) GetOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*appcheckout.OrderConfirmationDTO, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	return appcheckout.ToOrderConfirmationDTO(o), nil
}

// AdvanceStatus moves an order along its fulfillment path. Used by staff
// tooling; shoppers can only cancel.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target order.OrderStatus) (*appcheckout.OrderConfirmationDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	switch target {
	case order.OrderStatusProcessing:
		err = o.StartProcessing()
	case order.OrderStatusShipped:
		err = o.Ship()
	case order.OrderStatusDelivered:
		err = o.Deliver()
	case order.OrderStatusCancelled:
		err = o.Cancel()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target.String())
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error("Failed to update order status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	s.publishEvents(ctx, o)

	s.logger.Info("Order status changed",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", o.Status.String()))

	return appcheckout.ToOrderConfirmationDTO(o), nil
}

// CancelOrder cancels one of the user's own orders if it has not shipped
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*appcheckout.OrderConfirmationDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil || o.UserID != userID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	s.publishEvents(ctx, o)
	return appcheckout.ToOrderConfirmationDTO(o), nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.publisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}
