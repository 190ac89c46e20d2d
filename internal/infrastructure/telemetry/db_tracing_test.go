package telemetry_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bookhaven/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTracingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := telemetry.DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	cfg := telemetry.DefaultDBTracingConfig()

	// Disabled tracing must not touch the DB at all
	err := telemetry.RegisterDBTracing(nil, cfg, zap.NewNop())
	assert.NoError(t, err)
}

func TestRegisterDBTracing_Enabled(t *testing.T) {
	db := newTracingTestDB(t)

	cfg := telemetry.DefaultDBTracingConfig()
	cfg.Enabled = true

	err := telemetry.RegisterDBTracing(db, cfg, zap.NewNop())
	require.NoError(t, err)

	// Registering twice must fail on duplicate callback names
	err = telemetry.RegisterDBTracing(db, cfg, zap.NewNop())
	assert.Error(t, err)
}
