package utils

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("debug", "json")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger("nonsense", "text")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestSetupTracingLogsSpans(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	shutdown := SetupTracing(logger)
	defer shutdown(context.Background())

	_, span := otel.Tracer("test").Start(context.Background(), "catalog.discover")
	span.SetAttributes(attribute.Int("page", 2))
	span.End()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Span finished", entry.Message)
	assert.Equal(t, "catalog.discover", entry.Data["span"])
	assert.Equal(t, "2", entry.Data["page"])
}
