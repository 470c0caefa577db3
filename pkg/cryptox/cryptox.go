// Package cryptox seals the cached session token so a readable cache
// database does not leak credentials.
package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required byte length of a sealing key.
const KeySize = chacha20poly1305.KeySize

var ErrInvalidKey = errors.New("cryptox: sealing key must be 32 bytes")

// NewKey returns a fresh random sealing key.
func NewKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext with XChaCha20-Poly1305 under key, prepending
// the random nonce. Output is base64url encoded for storage in a text
// column.
func Seal(key []byte, plaintext string) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Fails if the key is wrong or the box was tampered with.
func Open(key []byte, sealed string) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("malformed sealed value: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("cryptox: sealed value too short")
	}

	nonce, box := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open sealed value: %w", err)
	}
	return string(plaintext), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	return chacha20poly1305.NewX(key)
}
