package vault

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

func TestStore_ReadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "vault.json"))

	assert.False(t, store.Exists())
	_, err := store.Read()
	assert.ErrorIs(t, err, lberrors.ErrVaultNotFound)
}

func TestStore_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	store := NewStore(path)

	data := []byte(`{"formatVersion":2}`)
	require.NoError(t, store.Write(data))

	assert.True(t, store.Exists())
	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_WriteCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "vault.json")
	store := NewStore(path)

	require.NoError(t, store.Write([]byte("envelope")))
	assert.True(t, store.Exists())
}

func TestStore_WriteRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "vault.json")
	store := NewStore(path)
	require.NoError(t, store.Write([]byte("envelope")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_WriteReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	store := NewStore(path)

	require.NoError(t, store.Write([]byte("old envelope")))
	require.NoError(t, store.Write([]byte("new envelope")))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("new envelope"), got)

	// No temp files should survive a completed write.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_WriteBackup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "vault.json"))

	data := []byte("pre-rotation envelope")
	backupPath, err := store.WriteBackup(data, "")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(backupPath), "vault.json.backup-")
	assert.Equal(t, dir, filepath.Dir(backupPath))

	got, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(backupPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestStore_WriteBackupHonorsDirectory(t *testing.T) {
	vaultDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")
	store := NewStore(filepath.Join(vaultDir, "vault.json"))

	data := []byte("pre-rotation envelope")
	backupPath, err := store.WriteBackup(data, backupDir)
	require.NoError(t, err)
	assert.Equal(t, backupDir, filepath.Dir(backupPath))
	assert.Contains(t, filepath.Base(backupPath), "vault.json.backup-")

	got, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Nothing lands beside the vault when a backup directory is set.
	entries, err := os.ReadDir(vaultDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_WriteBackupNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "vault.json"))

	// Two backups inside the same second must land in distinct files.
	first, err := store.WriteBackup([]byte("first"), "")
	require.NoError(t, err)
	second, err := store.WriteBackup([]byte("second"), "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	gotFirst, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), gotFirst)
}

func TestFileLock_LockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "vault.json.lock")

	lock := NewFileLock(lockPath)
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())

	// Re-acquirable after release.
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())

	// Unlock without a held lock is a no-op.
	assert.NoError(t, lock.Unlock())
}
