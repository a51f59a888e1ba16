// Package otel configures OpenTelemetry tracing for catering.space binaries.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// EnvEndpoint names the OTLP/HTTP collector URL.
	EnvEndpoint = "CATERING_SPACE_OTEL_ENDPOINT"
	// EnvEnabled disables tracing when set to "false".
	EnvEnabled = "CATERING_SPACE_OTEL_ENABLED"
)

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when CATERING_SPACE_OTEL_ENDPOINT is empty or
// CATERING_SPACE_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and no global provider is registered. Quote spans then go to the
// default no-op tracer.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(os.Getenv(EnvEnabled), "false") {
		return noop, nil
	}

	endpoint := strings.TrimSpace(os.Getenv(EnvEndpoint))
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceNamespace("catering.space"),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
