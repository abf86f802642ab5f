// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "cavediver"
	serviceVersion = "0.2.0"

	// headersEnv carries the exporter credentials. Without it nothing is
	// exported.
	headersEnv = "OTEL_EXPORTER_OTLP_HEADERS"
)

// sessionID identifies this run in every exported span and log line.
var sessionID = uuid.NewString()

// SessionID returns the identifier of the current game session.
func SessionID() string {
	return sessionID
}

// Enabled reports whether exporter credentials are configured.
func Enabled() bool {
	return os.Getenv(headersEnv) != ""
}

// Setup initializes OpenTelemetry with OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Honeycomb endpoint (https://api.honeycomb.io)
//   - OTEL_EXPORTER_OTLP_HEADERS: Headers including x-honeycomb-team=<api-key>
//
// Spans are batched and metrics are pushed by a periodic reader, both over
// OTLP HTTP. When no headers are set Setup installs nothing and spans and
// instruments stay no-ops. Internal OpenTelemetry errors go to logger, since
// stderr belongs to the terminal UI. attrs are added to the resource of
// every span and metric.
//
// Returns a shutdown function that flushes both providers and should be
// called on application exit.
func Setup(ctx context.Context, logger logr.Logger, attrs ...attribute.KeyValue) (shutdown func(context.Context) error, err error) {
	logger = logger.WithName("otel")
	otel.SetLogger(logger)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Error(err, "telemetry error")
	}))

	if !Enabled() {
		logger.Info("no exporter credentials, telemetry disabled")
		return func(context.Context) error { return nil }, nil
	}

	// Built without resource.Default() to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(attrs...)...))
	if err != nil {
		return nil, err
	}

	// Create OTLP HTTP exporters - automatically use OTEL_* env vars
	spanExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}
	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, errors.Join(err, spanExporter.Shutdown(ctx))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// resourceAttributes describes this process, followed by extra.
func resourceAttributes(extra ...attribute.KeyValue) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("session.id", sessionID),
		attribute.String("telemetry.sdk.language", "go"),
		attribute.String("telemetry.sdk.name", "opentelemetry"),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	return append(attrs, extra...)
}

// Tracer returns a named tracer for the given component.
// Use this to create spans within different parts of the application.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("cavediver/" + name)
}

// Meter returns a named meter for the given component. Until a meter
// provider is installed the global one discards every measurement.
func Meter(name string) metric.Meter {
	return otel.GetMeterProvider().Meter("cavediver/" + name)
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
