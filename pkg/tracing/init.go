package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/laurel/config"
	"github.com/Ramsey-B/laurel/pkg/tracing/exporters"
)

// Init configures the global tracer provider from the service config and
// returns a shutdown function to flush spans on exit.
func Init(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	switch cfg.TraceExporter {
	case "otlp":
		otlpExporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
			Endpoint: cfg.TraceOTLPEndpoint,
			Protocol: cfg.TraceOTLPProtocol,
			Insecure: true,
			Timeout:  exporters.DefaultOTLPConfig().Timeout,
		})
		if err != nil {
			return nil, err
		}
		exporter = otlpExporter
	default:
		exporter = &exporters.ConsoleExporter{}
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.AppName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	SetTracer(provider.Tracer(cfg.AppName))

	return provider.Shutdown, nil
}
