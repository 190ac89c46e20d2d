package notification

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/order"
	"go.uber.org/zap"
)

// Ensure LogNotifier implements OrderNotifier
var _ OrderNotifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log instead of sending email.
// Used in development and whenever email delivery is disabled.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// SendOrderConfirmation logs the confirmation instead of emailing it
func (n *LogNotifier) SendOrderConfirmation(_ context.Context, event *order.OrderPlacedEvent) error {
	if event == nil {
		return errors.New("order placed event is required")
	}

	n.logger.Info("Order confirmation (email disabled)",
		zap.String("order_number", event.OrderNumber),
		zap.String("recipient", event.CustomerEmail),
		zap.Int("items", len(event.Items)),
		zap.String("total", event.TotalAmount.StringFixed(2)))
	return nil
}
