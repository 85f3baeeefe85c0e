package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Domain labels. Entry operations report under DomainVault, key material access
// under DomainCrypto.
const (
	DomainVault  = "vault"
	DomainCrypto = "crypto"
)

// Status labels recorded with every operation.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusFor returns the status label describing err.
func StatusFor(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// BusinessMetrics records counts and latencies of vault and key operations.
//
// Every measurement carries three labels:
//   - domain: DomainVault for entry operations, DomainCrypto for key material access
//   - operation: the operation name, e.g. "vault_save", "vault_fetch", "key_get"
//   - status: StatusSuccess or StatusError, see StatusFor
//
// Exported series (with namespace "cachevault"):
//
//	cachevault_operations_total{domain,operation,status}
//	cachevault_operation_duration_seconds_bucket{domain,operation,status,le}
//
// Implementations must be safe for concurrent use. Callers normally go through
// Observe instead of calling both methods by hand.
type BusinessMetrics interface {
	// RecordOperation counts one call of operation, e.g. "vault_save" or "key_get".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration observes how long operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// Observe records both the count and the latency of an operation that started at
// start and finished with err.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := StatusFor(err)
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

type otelBusinessMetrics struct {
	operations metric.Int64Counter
	latency    metric.Float64Histogram
}

// latencyBuckets cover local keychain lookups (sub-millisecond) up to slow remote
// database round trips.
var latencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// NewBusinessMetrics registers the operation instruments on meterProvider. Metric
// names are prefixed with namespace, e.g. "cachevault_operations_total".
//
// The duration histogram uses latencyBuckets instead of the SDK defaults, whose
// smallest boundary (5ms) would fold every keychain hit into one bucket.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Vault and key operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Latency of vault and key operations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &otelBusinessMetrics{operations: operations, latency: latency}, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *otelBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (b *otelBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.latency.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

// NoOpBusinessMetrics discards every measurement. It backs the container when
// metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}
