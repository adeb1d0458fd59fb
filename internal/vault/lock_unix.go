//go:build !windows
// +build !windows

package vault

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileLock is a POSIX advisory lock guarding the vault's read-modify-write
// spans. Rotation holds it from the initial read through the final write so
// a concurrent view cannot observe an envelope mid-replacement.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a lock over the given path. The lock file is a sibling
// of the vault and holds no data.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock acquires the lock, blocking until any other holder releases it.
// Iff Lock returns nil, the caller must call Unlock later.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire vault lock: %w", err)
	}
	l.file = f
	return nil
}

// Unlock releases the lock.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("failed to release vault lock: %w", err)
	}
	return closeErr
}
