package workflows

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
	"github.com/lockboxcli/lockbox/internal/vault"
)

const (
	testPassword    = "Str0ng!Passw0rd123"
	wrongPassword   = "WrongPassw0rd!!"
	rotatedPassword = "An0ther$Secure99"
)

func testBundle() vault.SecretBundle {
	return vault.SecretBundle{
		Secrets: []vault.Secret{
			{Name: "primary", Value: "sk-abc123"},
			{Name: "secondary", Value: ""},
		},
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func saveTestVault(t *testing.T, path string) {
	t.Helper()
	_, err := Save(SaveOptions{
		VaultPath: path,
		Password:  testPassword,
		Bundle:    testBundle(),
	})
	require.NoError(t, err)
}

// writeLegacyVault persists a version 1 envelope by hand: no kdfParams,
// 16-byte salt, frozen legacy derivation. This is what vaults written before
// parameters were persisted look like on disk.
func writeLegacyVault(t *testing.T, path, password string) {
	t.Helper()

	salt, err := vault.NewSalt(vault.LegacySaltLength)
	require.NoError(t, err)
	key, err := vault.DeriveKey([]byte(password), salt, vault.LegacyParams())
	require.NoError(t, err)

	plaintext, err := vault.EncodeBundle(testBundle())
	require.NoError(t, err)
	ciphertext, nonce, tag, err := vault.Encrypt(plaintext, key)
	require.NoError(t, err)

	data, err := json.Marshal(map[string]any{
		"ciphertext":    hex.EncodeToString(ciphertext),
		"nonce":         hex.EncodeToString(nonce),
		"authTag":       hex.EncodeToString(tag),
		"salt":          hex.EncodeToString(salt),
		"algorithmId":   vault.AlgorithmAESGCM,
		"formatVersion": vault.VersionLegacy,
	})
	require.NoError(t, err)
	require.NoError(t, vault.NewStore(path).Write(data))
}

func backupFiles(t *testing.T, vaultPath string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(vaultPath))
	require.NoError(t, err)

	var backups []string
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".backup-") {
			backups = append(backups, filepath.Join(filepath.Dir(vaultPath), entry.Name()))
		}
	}
	return backups
}

func TestSave_WritesCurrentVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	data, err := vault.NewStore(path).Read()
	require.NoError(t, err)
	env, err := vault.DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, vault.VersionCurrent, env.Version)
	require.NotNil(t, env.KDFParams)
	assert.Equal(t, vault.CurrentParams(), *env.KDFParams)
}

func TestSave_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	_, err := Save(SaveOptions{
		VaultPath: path,
		Password:  testPassword,
		Bundle:    testBundle(),
	})
	assert.ErrorIs(t, err, lberrors.ErrVaultExists)

	_, err = Save(SaveOptions{
		VaultPath: path,
		Password:  testPassword,
		Bundle:    testBundle(),
		Force:     true,
	})
	assert.NoError(t, err)
}

func TestView_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	result, err := View(ViewOptions{VaultPath: path, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), result.Bundle)
	assert.Equal(t, vault.VersionCurrent, result.Version)
}

func TestView_WrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	_, err := View(ViewOptions{VaultPath: path, Password: wrongPassword})
	assert.ErrorIs(t, err, lberrors.ErrDecryptionFailed)
}

func TestView_MissingVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")

	_, err := View(ViewOptions{VaultPath: path, Password: testPassword})
	assert.ErrorIs(t, err, lberrors.ErrVaultNotFound)
}

func TestView_LegacyVaultStillOpens(t *testing.T) {
	// A version 1 vault must keep opening with the frozen legacy parameters
	// no matter what the current defaults have been raised to since.
	path := filepath.Join(t.TempDir(), "vault.json")
	writeLegacyVault(t, path, testPassword)

	result, err := View(ViewOptions{VaultPath: path, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, vault.VersionLegacy, result.Version)
	assert.Equal(t, testBundle(), result.Bundle)
}

func TestRotate_Succeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	result, err := Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: testPassword,
		NewPassword: rotatedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, vault.VersionCurrent, result.Version)

	// The old password no longer opens the live vault; the new one does.
	_, err = View(ViewOptions{VaultPath: path, Password: testPassword})
	assert.ErrorIs(t, err, lberrors.ErrDecryptionFailed)

	viewResult, err := View(ViewOptions{VaultPath: path, Password: rotatedPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), viewResult.Bundle)

	// Exactly one backup exists and it opens with the old password.
	backups := backupFiles(t, path)
	require.Len(t, backups, 1)
	assert.Equal(t, result.BackupPath, backups[0])

	backupResult, err := View(ViewOptions{VaultPath: backups[0], Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), backupResult.Bundle)
}

func TestRotate_HonorsBackupDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	backupDir := filepath.Join(t.TempDir(), "backups")
	saveTestVault(t, path)

	result, err := Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: testPassword,
		NewPassword: rotatedPassword,
		BackupDir:   backupDir,
	})
	require.NoError(t, err)
	assert.Equal(t, backupDir, filepath.Dir(result.BackupPath))

	// The backup lands in the configured directory, not beside the vault.
	assert.Empty(t, backupFiles(t, path))
	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	backupResult, err := View(ViewOptions{VaultPath: result.BackupPath, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), backupResult.Bundle)
}

func TestRotate_WrongOldPasswordLeavesVaultUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	saveTestVault(t, path)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: wrongPassword,
		NewPassword: rotatedPassword,
	})
	assert.ErrorIs(t, err, lberrors.ErrDecryptionFailed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed rotation must leave the live vault byte-for-byte unchanged")

	// No backup should exist: decryption failed before the backup step.
	assert.Empty(t, backupFiles(t, path))
}

func TestRotate_MissingVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")

	_, err := Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: testPassword,
		NewPassword: rotatedPassword,
	})
	assert.ErrorIs(t, err, lberrors.ErrVaultNotFound)
}

func TestRotate_UpgradesLegacyVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	writeLegacyVault(t, path, testPassword)

	result, err := Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: testPassword,
		NewPassword: rotatedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, vault.VersionCurrent, result.Version)

	// Rotation is the only path that upgrades the on-disk format.
	data, err := vault.NewStore(path).Read()
	require.NoError(t, err)
	env, err := vault.DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, vault.VersionCurrent, env.Version)

	// The backup keeps the legacy shape and the old password.
	backups := backupFiles(t, path)
	require.Len(t, backups, 1)
	backupResult, err := View(ViewOptions{VaultPath: backups[0], Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, vault.VersionLegacy, backupResult.Version)
}

func TestRotate_FullScenario(t *testing.T) {
	// The end-to-end contract: save, view, fail with a wrong password,
	// rotate, and confirm old/new password behavior on live vault and backup.
	path := filepath.Join(t.TempDir(), "vault.json")

	saveResult, err := Save(SaveOptions{
		VaultPath: path,
		Password:  testPassword,
		Bundle:    testBundle(),
	})
	require.NoError(t, err)
	assert.Equal(t, vault.VersionCurrent, saveResult.Version)

	viewResult, err := View(ViewOptions{VaultPath: path, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), viewResult.Bundle)
	value, ok := viewResult.Bundle.Get("primary")
	require.True(t, ok)
	assert.Equal(t, "sk-abc123", value)
	assert.False(t, viewResult.Bundle.CreatedAt.IsZero())

	_, err = View(ViewOptions{VaultPath: path, Password: wrongPassword})
	assert.ErrorIs(t, err, lberrors.ErrDecryptionFailed)

	rotateResult, err := Rotate(RotateOptions{
		VaultPath:   path,
		OldPassword: testPassword,
		NewPassword: rotatedPassword,
	})
	require.NoError(t, err)

	_, err = View(ViewOptions{VaultPath: path, Password: testPassword})
	assert.ErrorIs(t, err, lberrors.ErrDecryptionFailed)
	_, err = View(ViewOptions{VaultPath: path, Password: rotatedPassword})
	assert.NoError(t, err)

	backupResult, err := View(ViewOptions{VaultPath: rotateResult.BackupPath, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, testBundle(), backupResult.Bundle)
}
