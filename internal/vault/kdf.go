package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

// Digest identifiers recorded in envelope kdfParams.
const (
	DigestSHA256 = "sha256"
	DigestSHA512 = "sha512"
)

// Salt lengths in bytes per format version.
const (
	CurrentSaltLength = 32
	LegacySaltLength  = 16
)

// Params captures the PBKDF2 tunables recorded in a vault envelope. For
// version 2 envelopes these are persisted alongside the ciphertext, so the
// current defaults can be strengthened over time without breaking old vaults.
type Params struct {
	Iterations int    `json:"iterations"`
	Digest     string `json:"digest"`
	KeyLength  int    `json:"keyLength"`
}

// CurrentParams returns the derivation parameters applied to newly written
// vaults. Only ever consulted on the encrypt path; the decrypt path takes its
// parameters from the envelope being opened.
func CurrentParams() Params {
	return Params{
		Iterations: 600_000,
		Digest:     DigestSHA512,
		KeyLength:  32,
	}
}

// LegacyParams returns the fixed parameter set implied by version 1
// envelopes, which predate persisted kdfParams. These values are frozen;
// changing them would orphan every v1 vault in existence.
func LegacyParams() Params {
	return Params{
		Iterations: 100_000,
		Digest:     DigestSHA256,
		KeyLength:  32,
	}
}

// DeriveKey stretches a password into symmetric key material using PBKDF2
// with the given parameters. The returned key is ephemeral: callers use it
// for a single encrypt or decrypt and never persist or log it.
func DeriveKey(password, salt []byte, p Params) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("password is required")
	}
	if len(salt) == 0 {
		return nil, errors.New("salt is required")
	}
	if p.Iterations <= 0 {
		return nil, errors.New("iteration count must be positive")
	}
	if p.KeyLength <= 0 {
		return nil, errors.New("key length must be positive")
	}

	digest, err := digestFunc(p.Digest)
	if err != nil {
		return nil, err
	}

	return pbkdf2.Key(password, salt, p.Iterations, p.KeyLength, digest), nil
}

// NewSalt returns a cryptographically secure random salt of n bytes.
func NewSalt(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.New("salt length must be positive")
	}
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

func digestFunc(name string) (func() hash.Hash, error) {
	switch name {
	case DigestSHA256:
		return sha256.New, nil
	case DigestSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", lberrors.ErrUnsupportedDigest, name)
	}
}
