// Package mocks provides mock implementations of the crypto service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCodec is a mock implementation of service.Codec.
type MockCodec struct {
	mock.Mock
}

// NewMockCodec creates a MockCodec whose expectations are asserted when t ends.
func NewMockCodec(t testingT) *MockCodec {
	m := &MockCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encrypt mocks the Encrypt method of Codec.
func (m *MockCodec) Encrypt(ctx context.Context, plaintext string) (cryptoDomain.EncryptedPayload, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).(cryptoDomain.EncryptedPayload), args.Error(1)
}

// Decrypt mocks the Decrypt method of Codec.
func (m *MockCodec) Decrypt(ctx context.Context, nonce, ciphertext []byte) (string, error) {
	args := m.Called(ctx, nonce, ciphertext)
	return args.String(0), args.Error(1)
}

// MockDigester is a mock implementation of service.Digester.
type MockDigester struct {
	mock.Mock
}

// NewMockDigester creates a MockDigester whose expectations are asserted when t ends.
func NewMockDigester(t testingT) *MockDigester {
	m := &MockDigester{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Digest mocks the Digest method of Digester.
func (m *MockDigester) Digest(ctx context.Context, data []byte) (cryptoDomain.Digest, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(cryptoDomain.Digest), args.Error(1)
}

// MockKeyProvider is a mock implementation of service.KeyProvider.
type MockKeyProvider struct {
	mock.Mock
}

// NewMockKeyProvider creates a MockKeyProvider whose expectations are asserted when t ends.
func NewMockKeyProvider(t testingT) *MockKeyProvider {
	m := &MockKeyProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method of KeyProvider.
func (m *MockKeyProvider) Get(ctx context.Context, purpose cryptoDomain.Purpose) ([]byte, error) {
	args := m.Called(ctx, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Delete mocks the Delete method of KeyProvider.
func (m *MockKeyProvider) Delete(ctx context.Context, purpose cryptoDomain.Purpose) error {
	args := m.Called(ctx, purpose)
	return args.Error(0)
}
