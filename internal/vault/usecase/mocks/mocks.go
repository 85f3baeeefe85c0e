// Package mocks provides mock implementations of the vault use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

// NewMockEntryRepository creates a mock whose expectations are asserted when t ends.
func NewMockEntryRepository(t testingT) *MockEntryRepository {
	m := &MockEntryRepository{}
	register(&m.Mock, t)
	return m
}

// Upsert mocks the Upsert method of EntryRepository.
func (m *MockEntryRepository) Upsert(ctx context.Context, entry *vaultDomain.Entry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

// GetByName mocks the GetByName method of EntryRepository.
func (m *MockEntryRepository) GetByName(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Entry, error) {
	args := m.Called(ctx, namespace, keyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Entry), args.Error(1)
}

// GetByID mocks the GetByID method of EntryRepository.
func (m *MockEntryRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Entry), args.Error(1)
}

// Delete mocks the Delete method of EntryRepository.
func (m *MockEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttributeRepository is a mock implementation of AttributeRepository.
type MockAttributeRepository struct {
	mock.Mock
}

// NewMockAttributeRepository creates a mock whose expectations are asserted when t ends.
func NewMockAttributeRepository(t testingT) *MockAttributeRepository {
	m := &MockAttributeRepository{}
	register(&m.Mock, t)
	return m
}

// Upsert mocks the Upsert method of AttributeRepository.
func (m *MockAttributeRepository) Upsert(ctx context.Context, attribute *vaultDomain.Attribute) (int64, error) {
	args := m.Called(ctx, attribute)
	return args.Get(0).(int64), args.Error(1)
}

// GetByName mocks the GetByName method of AttributeRepository.
func (m *MockAttributeRepository) GetByName(
	ctx context.Context,
	entryID int64,
	name string,
) (*vaultDomain.Attribute, error) {
	args := m.Called(ctx, entryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Attribute), args.Error(1)
}

// GetByID mocks the GetByID method of AttributeRepository.
func (m *MockAttributeRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Attribute), args.Error(1)
}

// ListByEntryID mocks the ListByEntryID method of AttributeRepository.
func (m *MockAttributeRepository) ListByEntryID(
	ctx context.Context,
	entryID int64,
) ([]*vaultDomain.Attribute, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Attribute), args.Error(1)
}

// DeleteByEntryID mocks the DeleteByEntryID method of AttributeRepository.
func (m *MockAttributeRepository) DeleteByEntryID(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// MockEntryUseCase is a mock implementation of EntryUseCase.
type MockEntryUseCase struct {
	mock.Mock
}

// NewMockEntryUseCase creates a mock whose expectations are asserted when t ends.
func NewMockEntryUseCase(t testingT) *MockEntryUseCase {
	m := &MockEntryUseCase{}
	register(&m.Mock, t)
	return m
}

// Upsert mocks the Upsert method of EntryUseCase.
func (m *MockEntryUseCase) Upsert(
	ctx context.Context,
	namespace, keyName, value string,
	expiredAt *time.Time,
) (int64, error) {
	args := m.Called(ctx, namespace, keyName, value, expiredAt)
	return args.Get(0).(int64), args.Error(1)
}

// Get mocks the Get method of EntryUseCase.
func (m *MockEntryUseCase) Get(ctx context.Context, namespace, keyName string) (*vaultDomain.Entry, error) {
	args := m.Called(ctx, namespace, keyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Entry), args.Error(1)
}

// GetByID mocks the GetByID method of EntryUseCase.
func (m *MockEntryUseCase) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Entry), args.Error(1)
}

// Plaintext mocks the Plaintext method of EntryUseCase.
func (m *MockEntryUseCase) Plaintext(ctx context.Context, entry *vaultDomain.Entry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

// MockAttributeUseCase is a mock implementation of AttributeUseCase.
type MockAttributeUseCase struct {
	mock.Mock
}

// NewMockAttributeUseCase creates a mock whose expectations are asserted when t ends.
func NewMockAttributeUseCase(t testingT) *MockAttributeUseCase {
	m := &MockAttributeUseCase{}
	register(&m.Mock, t)
	return m
}

// Upsert mocks the Upsert method of AttributeUseCase.
func (m *MockAttributeUseCase) Upsert(ctx context.Context, entryID int64, name, value string) (int64, error) {
	args := m.Called(ctx, entryID, name, value)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method of AttributeUseCase.
func (m *MockAttributeUseCase) List(ctx context.Context, entryID int64) ([]*vaultDomain.Attribute, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Attribute), args.Error(1)
}

// GetByName mocks the GetByName method of AttributeUseCase.
func (m *MockAttributeUseCase) GetByName(
	ctx context.Context,
	entryID int64,
	name string,
) (*vaultDomain.Attribute, error) {
	args := m.Called(ctx, entryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Attribute), args.Error(1)
}

// GetByID mocks the GetByID method of AttributeUseCase.
func (m *MockAttributeUseCase) GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Attribute), args.Error(1)
}

// Plaintext mocks the Plaintext method of AttributeUseCase.
func (m *MockAttributeUseCase) Plaintext(ctx context.Context, attribute *vaultDomain.Attribute) (string, error) {
	args := m.Called(ctx, attribute)
	return args.String(0), args.Error(1)
}

// MockVaultUseCase is a mock implementation of VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// NewMockVaultUseCase creates a mock whose expectations are asserted when t ends.
func NewMockVaultUseCase(t testingT) *MockVaultUseCase {
	m := &MockVaultUseCase{}
	register(&m.Mock, t)
	return m
}

// Save mocks the Save method of VaultUseCase.
func (m *MockVaultUseCase) Save(ctx context.Context, input *vaultDomain.SaveInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

// Fetch mocks the Fetch method of VaultUseCase.
func (m *MockVaultUseCase) Fetch(ctx context.Context, namespace, keyName string) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, namespace, keyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

// FetchWithAttributes mocks the FetchWithAttributes method of VaultUseCase.
func (m *MockVaultUseCase) FetchWithAttributes(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, namespace, keyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

// Delete mocks the Delete method of VaultUseCase.
func (m *MockVaultUseCase) Delete(ctx context.Context, namespace, keyName string) error {
	args := m.Called(ctx, namespace, keyName)
	return args.Error(0)
}
