package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "creditledger"

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	ServiceName  string `env:"OTEL_SERVICE_NAME"           envDefault:"creditledger"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

//nolint:gochecknoglobals // process-wide tracer, mirrors the global logger
var (
	tracer   trace.Tracer
	tracerMu sync.RWMutex
)

// InitTracing installs the global tracer provider. Without an endpoint spans stay in-process.
func InitTracing(ctx context.Context, cfg *TelemetryConfig) (func(context.Context) error, error) {
	serviceName := defaultTracerName
	if cfg != nil && cfg.ServiceName != "" {
		serviceName = cfg.ServiceName
	}

	if cfg == nil || cfg.OTLPEndpoint == "" {
		setTracer(otel.Tracer(serviceName))
		FromContext(ctx).Info("tracing disabled, no OTLP endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	setTracer(tp.Tracer(serviceName))

	FromContext(ctx).Info("tracing initialized", String("endpoint", cfg.OTLPEndpoint))

	return tp.Shutdown, nil
}

func setTracer(t trace.Tracer) {
	tracerMu.Lock()
	tracer = t
	tracerMu.Unlock()
}

// Tracer returns the process tracer.
func Tracer() trace.Tracer {
	tracerMu.RLock()
	t := tracer
	tracerMu.RUnlock()

	if t == nil {
		return otel.Tracer(defaultTracerName)
	}
	return t
}

// StartSpan starts a span named after a ledger step.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddLedgerAttributes tags a span with the user and priced operation.
func AddLedgerAttributes(span trace.Span, userID, category, operation string) {
	attrs := make([]attribute.KeyValue, 0, 3) //nolint:mnd
	if userID != "" {
		attrs = append(attrs, attribute.String("ledger.user_id", userID))
	}
	if category != "" {
		attrs = append(attrs, attribute.String("ledger.category", category))
	}
	if operation != "" {
		attrs = append(attrs, attribute.String("ledger.operation", operation))
	}
	span.SetAttributes(attrs...)
}

// AddCostAttribute records the credit cost as an exact string.
func AddCostAttribute(span trace.Span, cost decimal.Decimal) {
	span.SetAttributes(attribute.String("ledger.cost", cost.String()))
}

// AddErrorAttribute marks a span as failed.
func AddErrorAttribute(span trace.Span, err error) {
	span.SetAttributes(attribute.String("error.message", err.Error()))
	span.RecordError(err)
}
