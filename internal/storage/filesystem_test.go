package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeViaOpenFile(t *testing.T, fs FileSystem, path string, data []byte) {
	t.Helper()
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestOSFileSystemWriteReadRemove(t *testing.T) {
	fs := NewOSFileSystem()
	path := filepath.Join(t.TempDir(), "file.txt")

	writeViaOpenFile(t, fs, path, []byte("hello"))

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := fs.Stat(path); !os.IsNotExist(err) {
		t.Error("expected the file to be gone after Remove")
	}
}

func TestOSFileSystemRenameAndMkdirAll(t *testing.T) {
	fs := NewOSFileSystem()
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b", "c")

	if err := fs.MkdirAll(nested, 0o700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if _, err := fs.Stat(nested); err != nil {
		t.Fatalf("expected nested directory to exist: %v", err)
	}

	oldPath := filepath.Join(nested, "old.txt")
	newPath := filepath.Join(nested, "new.txt")
	writeViaOpenFile(t, fs, oldPath, []byte("data"))
	if err := fs.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := fs.Stat(newPath); err != nil {
		t.Fatalf("expected renamed file to exist: %v", err)
	}
}

func TestOSFileSystemGlob(t *testing.T) {
	fs := NewOSFileSystem()
	dir := t.TempDir()
	for _, name := range []string{"vault.enc.tmp.one", "vault.enc.tmp.two", "vault.enc"} {
		writeViaOpenFile(t, fs, filepath.Join(dir, name), []byte("x"))
	}

	matches, err := fs.Glob(filepath.Join(dir, "*.tmp.*"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 tmp matches, got %d: %v", len(matches), matches)
	}
}
