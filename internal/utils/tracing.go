package utils

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanProcessor writes finished spans to the application logger at debug level
type LogSpanProcessor struct {
	logger *logrus.Logger
}

// NewLogSpanProcessor creates a span processor backed by logger
func NewLogSpanProcessor(logger *logrus.Logger) *LogSpanProcessor {
	return &LogSpanProcessor{logger: logger}
}

func (p *LogSpanProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := logrus.Fields{
		"span":        s.Name(),
		"trace_id":    s.SpanContext().TraceID().String(),
		"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
	}
	for _, attr := range s.Attributes() {
		fields[string(attr.Key)] = attr.Value.Emit()
	}

	entry := p.logger.WithFields(fields)
	if s.Status().Code == codes.Error {
		entry.WithField("error", s.Status().Description).Debug("Span failed")
		return
	}
	entry.Debug("Span finished")
}

func (p *LogSpanProcessor) Shutdown(ctx context.Context) error { return nil }

func (p *LogSpanProcessor) ForceFlush(ctx context.Context) error { return nil }

// SetupTracing installs a global tracer provider that reports spans through logger.
// The returned function flushes and stops the provider.
func SetupTracing(logger *logrus.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewLogSpanProcessor(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
