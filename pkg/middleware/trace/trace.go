package trace

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/agrosilo/silosys/pkg/middleware/logger"
)

type InitConfig struct {
	ServiceName    string
	Version        string
	TraceEndpoint  string
	MetricEndpoint string
}

var (
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
)

// InitTrace installs the global tracer/meter providers. Without a collector
// endpoint the spans go to a sampled stdout exporter, enough for dev.
func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(conf.ServiceName),
		semconv.ServiceVersion(conf.Version),
	))
	if err != nil {
		logger.Fatalf(ctx, "build otel resource err: %+v", err)
		return
	}

	var traceExp sdktrace.SpanExporter
	if conf.TraceEndpoint != "" {
		traceExp, err = otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithInsecure(),
		))
	} else {
		traceExp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		logger.Fatalf(ctx, "build trace exporter err: %+v", err)
		return
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.1))),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	metricExp, err := stdoutmetric.New()
	if err != nil {
		logger.Fatalf(ctx, "build metric exporter err: %+v", err)
		return
	}
	meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp,
			sdkmetric.WithInterval(time.Minute))),
	)
	otel.SetMeterProvider(meterProvider)
}

func CloseTrace(ctx context.Context) {
	if tracerProvider != nil {
		_ = tracerProvider.Shutdown(ctx)
	}
	if meterProvider != nil {
		_ = meterProvider.Shutdown(ctx)
	}
}
