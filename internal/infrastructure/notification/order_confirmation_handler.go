package notification

import (
	"context"
	"fmt"

	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/domain/shared"
)

// Ensure OrderConfirmationHandler implements EventHandler
var _ shared.EventHandler = (*OrderConfirmationHandler)(nil)

// OrderConfirmationHandler subscribes to order placement events and sends
// the confirmation email through the configured notifier.
type OrderConfirmationHandler struct {
	notifier OrderNotifier
}

// NewOrderConfirmationHandler creates a new OrderConfirmationHandler
func NewOrderConfirmationHandler(notifier OrderNotifier) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{notifier: notifier}
}

// Handle sends the confirmation for an order placed event
func (h *OrderConfirmationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}
	return h.notifier.SendOrderConfirmation(ctx, placed)
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderConfirmationHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}
