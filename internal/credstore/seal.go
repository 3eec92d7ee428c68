package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// Sealer encrypts and decrypts credential secrets with AES-GCM under a
// fixed key. A fresh random nonce is generated per Seal call.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a 16-, 24-, or 32-byte AES key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns the nonce and ciphertext separately.
func (s *Sealer) Seal(plaintext []byte) (nonce, ciphertext []byte, err error) {
	nonce = make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, s.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts a (nonce, ciphertext) pair produced by Seal.
func (s *Sealer) Open(nonce, ciphertext []byte) ([]byte, error) {
	return s.aead.Open(nil, nonce, ciphertext, nil)
}
