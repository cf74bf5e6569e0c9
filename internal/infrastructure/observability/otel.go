package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zatekoja/surgicalbooking"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount       metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	JourneyTransitions metric.Int64Counter
	BookingsCreated    metric.Int64Counter
	DegradedFallbacks  metric.Int64Counter
}

// Setup initializes OpenTelemetry tracing, metrics and runtime instrumentation
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		GetLogger().Warn().Err(err).Msg("Failed to start runtime metrics")
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			meterProvider.Shutdown(ctx),
			tracerProvider.Shutdown(ctx),
		)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics on the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	journeyTransitions, err := meter.Int64Counter(
		"journey.transition.count",
		metric.WithDescription("Number of applied journey commands"),
	)
	if err != nil {
		return nil, err
	}

	bookingsCreated, err := meter.Int64Counter(
		"journey.booking.count",
		metric.WithDescription("Number of bookings submitted and paid"),
	)
	if err != nil {
		return nil, err
	}

	degradedFallbacks, err := meter.Int64Counter(
		"journey.degraded.count",
		metric.WithDescription("Number of degraded-mode fallbacks taken"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:       requestCount,
		RequestDuration:    requestDuration,
		JourneyTransitions: journeyTransitions,
		BookingsCreated:    bookingsCreated,
		DegradedFallbacks:  degradedFallbacks,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordTransition records an applied journey command
func RecordTransition(ctx context.Context, metrics *Metrics, command, stage string) {
	if metrics == nil {
		return
	}
	metrics.JourneyTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("journey.command", command),
		attribute.String("journey.stage", stage),
	))
}

// RecordBooking records a finalization step (booked or paid)
func RecordBooking(ctx context.Context, metrics *Metrics, phase string) {
	if metrics == nil {
		return
	}
	metrics.BookingsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.phase", phase)))
}

// RecordDegraded records a degraded-mode fallback
func RecordDegraded(ctx context.Context, metrics *Metrics, component string) {
	if metrics == nil {
		return
	}
	metrics.DegradedFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("component", component)))
}
