package workflows

import (
	"fmt"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
	"github.com/lockboxcli/lockbox/internal/vault"
)

// SaveOptions configures the save workflow.
type SaveOptions struct {
	// VaultPath is the vault file location.
	VaultPath string

	// Password encrypts the bundle. Policy validation is the caller's job;
	// by the time a password reaches here it has already been accepted.
	Password string

	// Bundle is the plaintext credential bundle to encrypt.
	Bundle vault.SecretBundle

	// Force overwrites an existing vault. Without it, a present vault file
	// yields ErrVaultExists so the caller can ask for confirmation.
	Force bool
}

// SaveResult contains the outcome of a save operation.
type SaveResult struct {
	// VaultPath is where the envelope was written.
	VaultPath string

	// Version is the envelope format version written (always the current one).
	Version int
}

// Save encrypts a credential bundle under the current derivation parameters
// and writes a fresh envelope to disk.
func Save(opts SaveOptions) (*SaveResult, error) {
	store := vault.NewStore(opts.VaultPath)

	if store.Exists() && !opts.Force {
		return nil, lberrors.ErrVaultExists
	}

	salt, err := vault.NewSalt(vault.CurrentSaltLength)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	params := vault.CurrentParams()
	key, err := vault.DeriveKey([]byte(opts.Password), salt, params)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	plaintext, err := vault.EncodeBundle(opts.Bundle)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, tag, err := vault.Encrypt(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting bundle: %w", err)
	}

	data, err := vault.EncodeEnvelope(vault.Envelope{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		AuthTag:    tag,
		Salt:       salt,
		KDFParams:  &params,
		Algorithm:  vault.AlgorithmAESGCM,
		Version:    vault.VersionCurrent,
	})
	if err != nil {
		return nil, err
	}

	if err := store.Write(data); err != nil {
		return nil, err
	}

	return &SaveResult{
		VaultPath: opts.VaultPath,
		Version:   vault.VersionCurrent,
	}, nil
}
