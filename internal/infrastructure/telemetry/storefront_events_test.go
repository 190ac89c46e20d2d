package telemetry_test

import (
	"context"
	"testing"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func newTestEventHandler(t *testing.T) *telemetry.StorefrontEventHandler {
	t.Helper()
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{Meter: meter})
	require.NoError(t, err)
	return telemetry.NewStorefrontEventHandler(sm)
}

func TestStorefrontEventHandler_EventTypes(t *testing.T) {
	h := newTestEventHandler(t)

	types := h.EventTypes()
	assert.Contains(t, types, order.EventTypeOrderPlaced)
	assert.Contains(t, types, catalog.EventTypeListingSubmitted)
	assert.Contains(t, types, catalog.EventTypeListingApproved)
	assert.Contains(t, types, catalog.EventTypeListingRejected)
}

func TestStorefrontEventHandler_Handle(t *testing.T) {
	h := newTestEventHandler(t)
	ctx := context.Background()

	placed := &order.OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderPlaced, order.AggregateTypeOrder, uuid.New()),
		OrderNumber:     "123456",
		TotalAmount:     decimal.RequireFromString("24.99"),
		Items: []order.OrderItemInfo{
			{Title: "Dune", Quantity: 2},
		},
	}
	assert.NoError(t, h.Handle(ctx, placed))

	submitted := &catalog.ListingSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(catalog.EventTypeListingSubmitted, catalog.AggregateTypeListing, uuid.New()),
		Genre:           catalog.GenreFiction,
	}
	assert.NoError(t, h.Handle(ctx, submitted))

	reviewed := &catalog.ListingReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(catalog.EventTypeListingApproved, catalog.AggregateTypeListing, uuid.New()),
		Status:          catalog.ListingStatusApproved,
	}
	assert.NoError(t, h.Handle(ctx, reviewed))
}

func TestStorefrontEventHandler_Handle_IgnoresUnknownEvents(t *testing.T) {
	h := newTestEventHandler(t)

	other := &catalog.BookAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(catalog.EventTypeBookAdded, catalog.AggregateTypeBook, uuid.New()),
	}
	assert.NoError(t, h.Handle(context.Background(), other))
}
