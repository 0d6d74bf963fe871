package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTracedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedModel{}))
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.True(t, cfg.WithoutVariables)
}

func TestDBTracingPluginRegister(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
		assert.NoError(t, plugin.Register(setupTracedDB(t)))
	})

	t.Run("enabled registers without error", func(t *testing.T) {
		cfg := DefaultDBTracingConfig()
		cfg.Enabled = true
		cfg.DBSystem = "sqlite"

		plugin := NewDBTracingPlugin(cfg, zap.NewNop())
		assert.NoError(t, plugin.Register(setupTracedDB(t)))
	})
}

func TestDBTracingPluginRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	db := setupTracedDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "parent")
	require.NoError(t, db.WithContext(ctx).Create(&tracedModel{Name: "woven basket"}).Error)
	parent.End()

	spans := sr.Ended()
	require.NotEmpty(t, spans)

	found := false
	for _, span := range spans {
		for _, attr := range span.Attributes() {
			if attr.Key == "db.sql.table" && attr.Value.AsString() == "traced_models" {
				found = true
			}
		}
	}
	assert.True(t, found, "db.sql.table attribute not recorded")
}
