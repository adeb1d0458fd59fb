package workflows

import (
	"fmt"

	"github.com/lockboxcli/lockbox/internal/vault"
)

// RotateOptions configures the rotate workflow.
type RotateOptions struct {
	// VaultPath is the vault file location.
	VaultPath string

	// OldPassword opens the existing vault.
	OldPassword string

	// NewPassword encrypts the re-keyed vault. Policy validation is the
	// caller's job.
	NewPassword string

	// BackupDir is where the pre-rotation backup is written. Empty means
	// beside the vault file.
	BackupDir string
}

// RotateResult contains the outcome of a rotate operation.
type RotateResult struct {
	// BackupPath is the timestamped copy of the pre-rotation envelope,
	// still openable with the old password.
	BackupPath string

	// Version is the format version of the re-encrypted envelope.
	Version int
}

// Rotate re-encrypts the vault under a new password.
//
// The sequence is strictly ordered so there is no partial-success state:
//
//  1. Load: read, decode, and decrypt the vault under the old password.
//     Any failure aborts before anything on disk is touched.
//  2. Backup: copy the exact pre-rotation envelope bytes to a timestamped
//     backup file. Failure aborts before the live vault is touched.
//  3. Re-encrypt: derive a fresh key from the new password with the current
//     parameters and atomically replace the live vault.
//
// On any error the live vault is byte-for-byte unchanged. An advisory file
// lock is held for the whole span so two rotations cannot interleave; readers
// never observe a torn envelope because the store replaces the vault file
// atomically, not because of this lock.
func Rotate(opts RotateOptions) (*RotateResult, error) {
	lock := vault.NewFileLock(opts.VaultPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	store := vault.NewStore(opts.VaultPath)

	// Load. The raw bytes are retained for the backup copy.
	raw, err := store.Read()
	if err != nil {
		return nil, err
	}

	env, err := vault.DecodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	oldParams, err := vault.ParamsForEnvelope(env)
	if err != nil {
		return nil, err
	}

	oldKey, err := vault.DeriveKey([]byte(opts.OldPassword), env.Salt, oldParams)
	if err != nil {
		return nil, fmt.Errorf("deriving old key: %w", err)
	}

	plaintext, err := vault.Decrypt(env.Ciphertext, oldKey, env.Nonce, env.AuthTag)
	if err != nil {
		return nil, err
	}

	bundle, err := vault.DecodeBundle(plaintext)
	if err != nil {
		return nil, err
	}

	// Backup. Must be durable before the live vault is overwritten.
	backupPath, err := store.WriteBackup(raw, opts.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("writing backup: %w", err)
	}

	// Re-encrypt under the new password with fresh salt and current parameters.
	newSalt, err := vault.NewSalt(vault.CurrentSaltLength)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	newParams := vault.CurrentParams()
	newKey, err := vault.DeriveKey([]byte(opts.NewPassword), newSalt, newParams)
	if err != nil {
		return nil, fmt.Errorf("deriving new key: %w", err)
	}

	newPlaintext, err := vault.EncodeBundle(bundle)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, tag, err := vault.Encrypt(newPlaintext, newKey)
	if err != nil {
		return nil, fmt.Errorf("encrypting bundle: %w", err)
	}

	data, err := vault.EncodeEnvelope(vault.Envelope{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		AuthTag:    tag,
		Salt:       newSalt,
		KDFParams:  &newParams,
		Algorithm:  vault.AlgorithmAESGCM,
		Version:    vault.VersionCurrent,
	})
	if err != nil {
		return nil, err
	}

	if err := store.Write(data); err != nil {
		return nil, err
	}

	return &RotateResult{
		BackupPath: backupPath,
		Version:    vault.VersionCurrent,
	}, nil
}
