package telemetry

import (
	"context"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/domain/shared"
)

// Ensure StorefrontEventHandler implements EventHandler
var _ shared.EventHandler = (*StorefrontEventHandler)(nil)

// StorefrontEventHandler feeds business events into the storefront metrics.
// It subscribes to order placement and listing review events on the event
// bus, so instrumentation never touches the application services.
type StorefrontEventHandler struct {
	metrics *StorefrontMetrics
}

// NewStorefrontEventHandler creates a new StorefrontEventHandler
func NewStorefrontEventHandler(metrics *StorefrontMetrics) *StorefrontEventHandler {
	return &StorefrontEventHandler{metrics: metrics}
}

// Handle records the metric matching the event type
func (h *StorefrontEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		itemCount := 0
		for _, item := range e.Items {
			itemCount += item.Quantity
		}
		h.metrics.RecordOrderPlaced(ctx, e.TotalAmount, itemCount)
	case *catalog.ListingSubmittedEvent:
		h.metrics.RecordListingSubmitted(ctx, string(e.Genre))
	case *catalog.ListingReviewedEvent:
		h.metrics.RecordListingReviewed(ctx, string(e.Status))
	}
	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *StorefrontEventHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		catalog.EventTypeListingSubmitted,
		catalog.EventTypeListingApproved,
		catalog.EventTypeListingRejected,
	}
}
