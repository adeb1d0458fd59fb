package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

const (
	symmetricKeyLength = 32 // AES-256

	// NonceLength is the AES-GCM nonce width recorded in the envelope.
	NonceLength = 12

	// TagLength is the detached authentication tag width.
	TagLength = 16
)

// Encrypt seals plaintext under AES-256-GCM with a fresh random nonce,
// returning the ciphertext, nonce, and detached authentication tag. Nonces
// are never reused for a given key: every call draws a new one.
func Encrypt(plaintext, key []byte) (ciphertext, nonce, tag []byte, err error) {
	if len(key) != symmetricKeyLength {
		return nil, nil, nil, fmt.Errorf("aes-gcm requires a %d-byte key, got %d", symmetricKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce = make([]byte, NonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext = sealed[:len(sealed)-TagLength]
	tag = sealed[len(sealed)-TagLength:]
	return ciphertext, nonce, tag, nil
}

// Decrypt opens ciphertext sealed by Encrypt. Every failure cause — wrong
// key, tampered ciphertext, tampered nonce, tampered tag — collapses into the
// single ErrDecryptionFailed sentinel so callers and attackers alike cannot
// distinguish them.
func Decrypt(ciphertext, key, nonce, tag []byte) ([]byte, error) {
	if len(key) != symmetricKeyLength || len(nonce) != NonceLength || len(tag) != TagLength {
		return nil, lberrors.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, lberrors.ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, lberrors.ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, lberrors.ErrDecryptionFailed
	}
	return plaintext, nil
}
