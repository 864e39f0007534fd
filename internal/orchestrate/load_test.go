package orchestrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

func testScope(t *testing.T) paths.ScopeInfo {
	t.Helper()
	return paths.ScopeInfo{Scope: paths.ScopeGlobal, VaultPath: filepath.Join(t.TempDir(), "vault.enc")}
}

func TestCreateThenLoadVaultRoundTrip(t *testing.T) {
	t.Setenv("OBSCURA_PASSPHRASE", "correct horse battery staple")
	scope := testScope(t)

	created, err := CreateVault(scope, "")
	require.NoError(t, err)
	require.NoError(t, created.Aliases.Add("alias1", "value1", created.Dek))
	require.NoError(t, created.Save())
	created.Close()

	loaded, err := LoadVault(scope, "")
	require.NoError(t, err)
	defer loaded.Close()

	value, ok, err := loaded.Aliases.Get("alias1", loaded.Dek)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value1", value)
}

func TestLoadVaultMissingFileErrors(t *testing.T) {
	t.Setenv("OBSCURA_PASSPHRASE", "whatever")
	scope := testScope(t)

	_, err := LoadVault(scope, "")
	require.ErrorIs(t, err, vaulterr.ErrVaultNotFound)
}

func TestCreateVaultRejectsShortPassphrase(t *testing.T) {
	t.Setenv("OBSCURA_PASSPHRASE", "short")
	scope := testScope(t)

	_, err := CreateVault(scope, "")
	require.ErrorIs(t, err, vaulterr.ErrPassphraseTooShort)
}

func TestSaveThenCloseZeroesDek(t *testing.T) {
	t.Setenv("OBSCURA_PASSPHRASE", "correct horse battery staple")
	scope := testScope(t)

	loaded, err := CreateVault(scope, "")
	require.NoError(t, err)
	require.NoError(t, loaded.Save())

	dekPtr := loaded.Dek
	loaded.Close()

	allZero := true
	for _, b := range dekPtr {
		if b != 0 {
			allZero = false
			break
		}
	}
	require.True(t, allZero, "Close should zero the DEK in place")
}

func TestMain(m *testing.M) {
	// Route the session cache to a temp home so tests never touch a real
	// user's config directory or agent socket.
	dir, err := os.MkdirTemp("", "obscura-orchestrate-test-*")
	if err == nil {
		os.Setenv("XDG_CONFIG_HOME", dir)
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}
