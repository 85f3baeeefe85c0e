package service

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
	"github.com/allisson/cachevault/internal/metrics"
)

// keyProviderWithMetrics decorates KeyProvider with metrics instrumentation.
type keyProviderWithMetrics struct {
	next    KeyProvider
	metrics metrics.BusinessMetrics
}

// NewKeyProviderWithMetrics wraps a KeyProvider with metrics recording. Every codec and
// digest call reads key material, so key_get counts credential-store round trips.
func NewKeyProviderWithMetrics(provider KeyProvider, m metrics.BusinessMetrics) KeyProvider {
	return &keyProviderWithMetrics{
		next:    provider,
		metrics: m,
	}
}

func (k *keyProviderWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, k.metrics, metrics.DomainCrypto, operation, start, err)
}

// Get records metrics for key material reads.
func (k *keyProviderWithMetrics) Get(ctx context.Context, purpose cryptoDomain.Purpose) ([]byte, error) {
	start := time.Now()
	key, err := k.next.Get(ctx, purpose)
	k.record(ctx, "key_get", start, err)
	return key, err
}

// Delete records metrics for key material deletion.
func (k *keyProviderWithMetrics) Delete(ctx context.Context, purpose cryptoDomain.Purpose) error {
	start := time.Now()
	err := k.next.Delete(ctx, purpose)
	k.record(ctx, "key_delete", start, err)
	return err
}
