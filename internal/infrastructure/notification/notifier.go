// Package notification delivers customer-facing messages triggered by
// domain events, such as the order confirmation email.
package notification

import (
	"context"

	"github.com/bookhaven/backend/internal/domain/order"
)

// OrderNotifier sends order lifecycle notifications to customers
type OrderNotifier interface {
	// SendOrderConfirmation notifies the customer that their order was placed
	SendOrderConfirmation(ctx context.Context, event *order.OrderPlacedEvent) error
}
