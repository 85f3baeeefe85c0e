// Package metrics records vault and HTTP measurements with OpenTelemetry and serves
// them in Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Provider owns the OpenTelemetry meter provider and the private Prometheus registry
// it exports to.
//
// Each Provider has its own registry rather than the global default one, so tests and
// embedded containers can create several providers without duplicate registration
// panics. The registry carries:
//   - every instrument created from MeterProvider (business and HTTP metrics)
//   - the Go runtime collector (go_goroutines, go_memstats_*, ...)
//   - the process collector (process_cpu_seconds_total, process_open_fds, ...)
//
// Lifecycle:
//
//	The container creates one Provider when METRICS_ENABLED is true, hands its
//	MeterProvider to the decorators and the HTTP middleware, serves Handler on the
//	metrics listener and calls Shutdown last.
//
// Example usage:
//
//	provider, err := metrics.NewProvider("cachevault")
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), "cachevault")
//	router.GET("/metrics", gin.WrapH(provider.Handler()))
type Provider struct {
	meterProvider *metric.MeterProvider
	exporter      *promexporter.Exporter
	registry      *prometheus.Registry
}

// NewProvider creates a meter provider exporting to a fresh registry. The registry
// also carries the Go runtime and process collectors. namespace prefixes every
// instrument name and is reported as service.name.
func NewProvider(namespace string) (*Provider, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", namespace))

	return &Provider{
		meterProvider: metric.NewMeterProvider(
			metric.WithReader(exporter),
			metric.WithResource(res),
		),
		exporter: exporter,
		registry: registry,
	}, nil
}

// Handler serves the registry in Prometheus exposition format. OpenMetrics is
// negotiated when the scraper asks for it.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// MeterProvider returns the provider instruments are created from.
func (p *Provider) MeterProvider() *metric.MeterProvider {
	return p.meterProvider
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
