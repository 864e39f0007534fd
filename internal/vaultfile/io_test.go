package vaultfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

func TestCreateReadDecryptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")

	dek, err := Create(path, []byte("correct horse battery staple"))
	require.NoError(t, err)
	defer crypto.ClearBytes(dek)

	require.True(t, Exists(path))

	vf, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, vf.Version)
	require.Equal(t, "argon2id", vf.Kdf.Alg)

	aliases, readDek, err := DecryptWithPassphrase(vf, []byte("correct horse battery staple"))
	require.NoError(t, err)
	defer crypto.ClearBytes(readDek)
	require.Equal(t, dek, readDek)
	require.Empty(t, aliases.Aliases)
}

func TestCreateRefusesExistingVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	dek, err := Create(path, []byte("passphrase1"))
	require.NoError(t, err)
	crypto.ClearBytes(dek)

	_, err = Create(path, []byte("passphrase2"))
	require.ErrorIs(t, err, vaulterr.ErrVaultExists)
}

func TestDecryptWithWrongPassphraseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	dek, err := Create(path, []byte("right-passphrase"))
	require.NoError(t, err)
	crypto.ClearBytes(dek)

	vf, err := Read(path)
	require.NoError(t, err)

	_, _, err = DecryptWithPassphrase(vf, []byte("wrong-passphrase"))
	require.ErrorIs(t, err, vaulterr.ErrDecryptionFailed)
}

func TestSavePersistsAliasChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	dek, err := Create(path, []byte("passphrase"))
	require.NoError(t, err)
	defer crypto.ClearBytes(dek)

	vf, err := Read(path)
	require.NoError(t, err)
	aliases, err := DecryptWithDEK(vf, dek)
	require.NoError(t, err)

	require.NoError(t, aliases.Add("github", "token-value", dek))
	require.NoError(t, Save(path, vf, aliases, dek))

	reread, err := Read(path)
	require.NoError(t, err)
	reopened, err := DecryptWithDEK(reread, dek)
	require.NoError(t, err)
	value, ok, err := reopened.Get("github", dek)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token-value", value)
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	dek, err := Create(path, []byte("passphrase"))
	require.NoError(t, err)
	crypto.ClearBytes(dek)

	vf, err := Read(path)
	require.NoError(t, err)
	vf.Version = 999
	require.NoError(t, writeAtomic(path, *vf))

	_, err = Read(path)
	require.ErrorIs(t, err, vaulterr.ErrInvalidVaultFormat)
}

func TestWriteAtomicLeavesNoOrphansOnSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	dek, err := Create(path, []byte("passphrase"))
	require.NoError(t, err)
	crypto.ClearBytes(dek)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp.*"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestWriteAtomicSweepsOrphanedTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.enc")
	orphan := path + ".tmp.leftover-from-a-crash"
	require.NoError(t, os.WriteFile(orphan, []byte("stale"), 0o600))

	dek, err := Create(path, []byte("passphrase"))
	require.NoError(t, err)
	crypto.ClearBytes(dek)

	_, err = os.Stat(orphan)
	require.True(t, os.IsNotExist(err), "orphaned temp file should have been swept")
}
