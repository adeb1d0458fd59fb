package workflows

import (
	"fmt"

	"github.com/lockboxcli/lockbox/internal/vault"
)

// ViewOptions configures the view workflow.
type ViewOptions struct {
	// VaultPath is the vault file location.
	VaultPath string

	// Password decrypts the bundle.
	Password string
}

// ViewResult contains the decrypted vault contents.
type ViewResult struct {
	// Bundle is the decrypted credential bundle.
	Bundle vault.SecretBundle

	// Version is the format version detected in the stored envelope.
	Version int
}

// View opens the vault and returns its decrypted bundle.
//
// Returns ErrVaultNotFound when no vault exists and ErrDecryptionFailed for a
// wrong password or a tampered envelope; the two decryption causes are
// deliberately indistinguishable.
func View(opts ViewOptions) (*ViewResult, error) {
	store := vault.NewStore(opts.VaultPath)

	data, err := store.Read()
	if err != nil {
		return nil, err
	}

	env, err := vault.DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	// Derivation parameters come from the envelope, not the current defaults.
	params, err := vault.ParamsForEnvelope(env)
	if err != nil {
		return nil, err
	}

	key, err := vault.DeriveKey([]byte(opts.Password), env.Salt, params)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	plaintext, err := vault.Decrypt(env.Ciphertext, key, env.Nonce, env.AuthTag)
	if err != nil {
		return nil, err
	}

	bundle, err := vault.DecodeBundle(plaintext)
	if err != nil {
		return nil, err
	}

	return &ViewResult{
		Bundle:  bundle,
		Version: env.Version,
	}, nil
}
