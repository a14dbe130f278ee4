// Package otel wires OpenTelemetry tracing for the portfolio service.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the trace exporter.
type Config struct {
	// Endpoint is the OTLP/HTTP collector URL. Tracing is off when empty.
	Endpoint string `env:"PORTFOLIO_OTEL_ENDPOINT"`
	// Enabled set to "false" turns tracing off even with an endpoint.
	Enabled string `env:"PORTFOLIO_OTEL_ENABLED"`
}

// Active reports whether cfg asks for an exporter.
func (cfg Config) Active() bool {
	if strings.EqualFold(strings.TrimSpace(cfg.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(cfg.Endpoint) != ""
}

// Setup initialises OpenTelemetry tracing for serviceName.
//
// When cfg is not Active, Setup registers nothing and returns a no-op
// shutdown. The returned shutdown flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}
