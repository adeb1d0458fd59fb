package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

// Store reads and writes the vault file. It does not interpret the bytes;
// envelope parsing belongs to the codec.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Exists reports whether a vault file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Read returns the raw vault bytes. A missing file yields ErrVaultNotFound;
// any other failure is surfaced with its underlying cause.
func (s *Store) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, lberrors.ErrVaultNotFound
		}
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}
	return data, nil
}

// Write replaces the vault file atomically: the bytes go to a temp file in
// the same directory, get restricted to owner read/write, synced, and renamed
// into place. A reader can never observe a partially written envelope.
func (s *Store) Write(data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "vault-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp vault file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace vault file: %w", err)
	}
	return nil
}

// WriteBackup copies raw envelope bytes to a timestamp-qualified backup named
// after the vault file and returns its path. Backups land in dir, or beside
// the vault when dir is empty. The backup is synced to disk before returning;
// callers rely on it being durable before they touch the live vault. Backups
// are never overwritten: a name collision picks a new name.
func (s *Store) WriteBackup(data []byte, dir string) (string, error) {
	if dir == "" {
		dir = filepath.Dir(s.Path)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := fmt.Sprintf("%s.backup-%s", filepath.Base(s.Path), time.Now().UTC().Format("20060102-150405"))

	for attempt := 0; ; attempt++ {
		name := base
		if attempt > 0 {
			name = fmt.Sprintf("%s.%d", base, attempt)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create backup file: %w", err)
		}

		if err := writeAndClose(f, data); err != nil {
			os.Remove(path)
			return "", err
		}
		return path, nil
	}
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write vault data: %w", err)
	}
	// Best-effort permission hardening: owner read/write only.
	if err := f.Chmod(0600); err != nil {
		f.Close()
		return fmt.Errorf("failed to restrict vault permissions: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync vault data: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close vault file: %w", err)
	}
	return nil
}
