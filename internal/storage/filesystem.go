// Package storage abstracts the handful of file-system calls the vault's
// atomic write path depends on, so a crash between write and rename can be
// simulated in tests by wrapping the real file system and failing one call.
package storage

import (
	"os"
	"path/filepath"
)

// FileSystem is the seam vaultfile's durable writer goes through: open a
// temp file, remove it on cleanup/sweep, rename it over the destination,
// and glob for orphans left by a prior crash. It intentionally omits
// anything the vault's write path doesn't need (a plain WriteFile, for
// instance, would bypass the fsync-then-rename discipline entirely).
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// osFileSystem implements FileSystem over the real os package.
type osFileSystem struct{}

// NewOSFileSystem returns the FileSystem obscura-cli runs with in production.
func NewOSFileSystem() FileSystem {
	return &osFileSystem{}
}

func (f *osFileSystem) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	// #nosec G304 -- the only caller is vaultfile's atomic writer, which builds this path itself
	return os.OpenFile(name, flag, perm)
}

func (f *osFileSystem) ReadFile(name string) ([]byte, error) {
	// #nosec G304 -- the only caller is vaultfile.Read, which builds this path itself
	return os.ReadFile(name)
}

func (f *osFileSystem) Remove(name string) error {
	return os.Remove(name)
}

func (f *osFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (f *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (f *osFileSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}
