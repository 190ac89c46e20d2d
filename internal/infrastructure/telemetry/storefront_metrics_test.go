package telemetry_test

import (
	"context"
	"testing"

	"github.com/bookhaven/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewStorefrontMetrics(t *testing.T) {
	t.Run("requires a meter", func(t *testing.T) {
		_, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{})
		assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	})

	t.Run("creates metrics with noop meter", func(t *testing.T) {
		meter := noop.NewMeterProvider().Meter("test")
		sm, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{
			Meter:  meter,
			Logger: zap.NewNop(),
		})

		require.NoError(t, err)
		assert.NotNil(t, sm)
	})

	t.Run("defaults logger when nil", func(t *testing.T) {
		meter := noop.NewMeterProvider().Meter("test")
		sm, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{Meter: meter})

		require.NoError(t, err)
		assert.NotNil(t, sm)
	})
}

func TestStorefrontMetrics_Record(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{Meter: meter})
	require.NoError(t, err)

	ctx := context.Background()

	// Recording against a noop meter must never panic
	assert.NotPanics(t, func() {
		sm.RecordOrderPlaced(ctx, decimal.RequireFromString("88.48"), 3)
		sm.RecordCheckoutStep(ctx, "shipping")
		sm.RecordCartItemAdded(ctx, 2)
		sm.RecordListingSubmitted(ctx, "fiction")
		sm.RecordListingReviewed(ctx, "APPROVED")
	})
}
