package vaultfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/obscura-corp/obscura-cli/internal/storage"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

const vaultPermissions = 0o600

// fs is the filesystem every vault write goes through. Tests substitute a
// different storage.FileSystem to exercise crash-between-write-and-rename
// scenarios without killing a real process mid-write.
var fs storage.FileSystem = storage.NewOSFileSystem()

// writeAtomic serializes vf to pretty-printed JSON and writes it to path
// without ever leaving a half-written vault file behind: write to a
// uniquely-named temp file, fsync, rename over the destination, then fix up
// permissions.
func writeAtomic(path string, vf VaultFile) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return vaulterr.ErrFilePermission
	}

	sweepOrphans(dir)

	data, err := json.MarshalIndent(vf, "", "  ")
	if err != nil {
		return vaulterr.ErrEncryptionFailed
	}

	tempPath := fmt.Sprintf("%s.tmp.%s", path, uuid.NewString())

	f, err := fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, vaultPermissions)
	if err != nil {
		return vaulterr.ErrFilePermission
	}
	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		_ = fs.Remove(tempPath)
	}()

	if _, err := f.Write(data); err != nil {
		return vaulterr.ErrFilePermission
	}
	if err := f.Sync(); err != nil {
		return vaulterr.ErrFilePermission
	}
	if err := f.Close(); err != nil {
		return vaulterr.ErrFilePermission
	}
	closed = true

	if err := fs.Rename(tempPath, path); err != nil {
		return vaulterr.ErrFilePermission
	}
	if err := os.Chmod(path, vaultPermissions); err != nil {
		return vaulterr.ErrFilePermission
	}
	return nil
}

// sweepOrphans best-effort removes leftover temp files from a previous save
// that crashed between write and rename.
func sweepOrphans(dir string) {
	matches, err := fs.Glob(filepath.Join(dir, "*.tmp.*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		_ = fs.Remove(m)
	}
}
