package observes

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type TracerOption struct {
	URL           string
	Insecure      bool
	Headers       map[string]string
	Name          string
	Version       string
	Environment   string
	SamplingRate  float64
	BatchTimeout  time.Duration
	ExportTimeout time.Duration
}

// NewTracer installs an OTLP/gRPC tracer provider. Without an endpoint the
// global no-op provider stays in place. The returned function flushes and
// shuts the provider down.
func NewTracer(opt *TracerOption) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if opt == nil || opt.URL == "" {
		return noop, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opt.URL)}
	if opt.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	if len(opt.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(opt.Headers))
	}
	exp, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", opt.Name),
			attribute.String("service.version", opt.Version),
			attribute.String("environment", opt.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opt.SamplingRate))),
		sdktrace.WithBatcher(exp,
			sdktrace.WithBatchTimeout(opt.BatchTimeout),
			sdktrace.WithExportTimeout(opt.ExportTimeout),
		),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}
