package domain

// EncryptedPayload is the output of one sealing operation. The nonce is drawn fresh
// from crypto/rand for every call and must be stored next to the ciphertext.
type EncryptedPayload struct {
	Ciphertext []byte
	Nonce      []byte
}

// Digest is a fixed-size peppered one-way digest of an attribute value.
type Digest [DigestSize]byte

// Bytes returns the digest as a slice suitable for a binary column.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}
