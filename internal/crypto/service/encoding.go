package service

import (
	"encoding/base32"
	"fmt"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// zBase32 is the human-oriented z-base-32 alphabet, unpadded. Stored key material
// uses it so that it survives any credential store's character-set rules.
var zBase32 = base32.NewEncoding("ybndrfg8ejkmcpqxot1uwisza345h769").WithPadding(base32.NoPadding)

// EncodeKey renders raw key material as z-base-32 text.
func EncodeKey(key []byte) string {
	return zBase32.EncodeToString(key)
}

// DecodeKey parses z-base-32 text back into exactly KeySize raw bytes.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := zBase32.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrCorruptKeyEncoding, err)
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf(
			"%w: decoded %d bytes, want %d",
			cryptoDomain.ErrCorruptKeyEncoding,
			len(key),
			cryptoDomain.KeySize,
		)
	}
	return key, nil
}
