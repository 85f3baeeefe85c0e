package service

import (
	"strings"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// cipherFactories lists every algorithm a vault value can be sealed with.
var cipherFactories = map[cryptoDomain.Algorithm]func(key []byte) (AEAD, error){
	cryptoDomain.AESGCM: func(key []byte) (AEAD, error) {
		return NewAESGCM(key)
	},
	cryptoDomain.ChaCha20: func(key []byte) (AEAD, error) {
		return NewChaCha20Poly1305(key)
	},
}

// AEADManagerService builds ciphers from cipherFactories.
type AEADManagerService struct{}

func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns the cipher for alg keyed with key. The key must be exactly
// cryptoDomain.KeySize bytes.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	factory, ok := cipherFactories[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	return factory(key)
}

// ParseAlgorithm resolves a configured algorithm name. Matching ignores case and
// surrounding whitespace.
func ParseAlgorithm(name string) (cryptoDomain.Algorithm, error) {
	alg := cryptoDomain.Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := cipherFactories[alg]; !ok {
		return "", cryptoDomain.ErrUnsupportedAlgorithm
	}
	return alg, nil
}
