// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when metrics are constructed without a meter.
var ErrMeterNil = errors.New("meter is required")

// StorefrontMetrics tracks business activity across the storefront:
// orders placed, checkout progress, cart activity and listing review flow.
type StorefrontMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	ordersPlacedTotal      *Counter
	orderAmount            *Histogram
	checkoutStepsTotal     *Counter
	cartItemsAddedTotal    *Counter
	listingsSubmittedTotal *Counter
	listingsReviewedTotal  *Counter
}

// StorefrontMetricsConfig holds configuration for storefront metrics.
type StorefrontMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewStorefrontMetrics creates a new StorefrontMetrics instance.
func NewStorefrontMetrics(cfg StorefrontMetricsConfig) (*StorefrontMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &StorefrontMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	sm.ordersPlacedTotal, err = NewCounter(
		cfg.Meter,
		"bookhaven_orders_placed_total",
		"Total number of orders placed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	sm.orderAmount, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "bookhaven_order_amount",
		Description: "Distribution of order totals in dollars",
		Unit:        "{usd}",
		Boundaries:  OrderAmountBuckets,
	})
	if err != nil {
		return nil, err
	}

	sm.checkoutStepsTotal, err = NewCounter(
		cfg.Meter,
		"bookhaven_checkout_steps_total",
		"Total number of completed checkout steps",
		"{steps}",
	)
	if err != nil {
		return nil, err
	}

	sm.cartItemsAddedTotal, err = NewCounter(
		cfg.Meter,
		"bookhaven_cart_items_added_total",
		"Total number of items added to carts",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	sm.listingsSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"bookhaven_listings_submitted_total",
		"Total number of sell-your-books listings submitted",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	sm.listingsReviewedTotal, err = NewCounter(
		cfg.Meter,
		"bookhaven_listings_reviewed_total",
		"Total number of listings approved or rejected",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// RecordOrderPlaced records an order placement with its total amount
func (sm *StorefrontMetrics) RecordOrderPlaced(ctx context.Context, totalAmount decimal.Decimal, itemCount int) {
	sm.ordersPlacedTotal.Inc(ctx)
	amount, _ := totalAmount.Float64()
	sm.orderAmount.Record(ctx, amount, attribute.Int("items_count", itemCount))
}

// RecordCheckoutStep records completion of one checkout wizard step
func (sm *StorefrontMetrics) RecordCheckoutStep(ctx context.Context, step string) {
	sm.checkoutStepsTotal.Inc(ctx, AttrCheckoutStep.String(step))
}

// RecordCartItemAdded records items added to a cart
func (sm *StorefrontMetrics) RecordCartItemAdded(ctx context.Context, quantity int) {
	sm.cartItemsAddedTotal.Add(ctx, int64(quantity))
}

// RecordListingSubmitted records a new listing submission
func (sm *StorefrontMetrics) RecordListingSubmitted(ctx context.Context, genre string) {
	sm.listingsSubmittedTotal.Inc(ctx, AttrGenre.String(genre))
}

// RecordListingReviewed records a review decision on a listing
func (sm *StorefrontMetrics) RecordListingReviewed(ctx context.Context, status string) {
	sm.listingsReviewedTotal.Inc(ctx, AttrListingStatus.String(status))
}
