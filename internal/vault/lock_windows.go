//go:build windows
// +build windows

package vault

// FileLock is a no-op on Windows. flock(2) has no direct equivalent there,
// and the vault is a single-user tool; the atomic rename in Store.Write
// still prevents torn reads.
type FileLock struct {
	path string
}

func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

func (l *FileLock) Lock() error { return nil }

func (l *FileLock) Unlock() error { return nil }
