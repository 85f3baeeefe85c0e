package usecase

import (
	"context"
	"time"

	"github.com/allisson/cachevault/internal/metrics"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, v.metrics, metrics.DomainVault, operation, start, err)
}

// Save records metrics for save operations.
func (v *vaultUseCaseWithMetrics) Save(ctx context.Context, input *vaultDomain.SaveInput) (int64, error) {
	start := time.Now()
	id, err := v.next.Save(ctx, input)
	v.record(ctx, "vault_save", start, err)
	return id, err
}

// Fetch records metrics for fetch operations.
func (v *vaultUseCaseWithMetrics) Fetch(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := v.next.Fetch(ctx, namespace, keyName)
	v.record(ctx, "vault_fetch", start, err)
	return secret, err
}

// FetchWithAttributes records metrics for fetch operations that include attributes.
func (v *vaultUseCaseWithMetrics) FetchWithAttributes(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := v.next.FetchWithAttributes(ctx, namespace, keyName)
	v.record(ctx, "vault_fetch_with_attributes", start, err)
	return secret, err
}

// Delete records metrics for delete operations.
func (v *vaultUseCaseWithMetrics) Delete(ctx context.Context, namespace, keyName string) error {
	start := time.Now()
	err := v.next.Delete(ctx, namespace, keyName)
	v.record(ctx, "vault_delete", start, err)
	return err
}
