// Package orchestrate implements the shared read-modify-write preamble
// every command needs: resolve which vault is in play, obtain its DEK and
// current alias map (via the session cache fast path or an interactive
// prompt), and persist changes back atomically.
package orchestrate

import (
	"github.com/obscura-corp/obscura-cli/internal/alias"
	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
	"github.com/obscura-corp/obscura-cli/internal/session"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

// Loaded bundles everything a command needs after a successful LoadVault:
// the unwrapped DEK, the decrypted alias map, the parsed vault file (so
// Save can re-seal it in place), and the cache backend in use (nil if one
// couldn't be reached, in which case Save simply skips cache refresh).
type Loaded struct {
	Scope   paths.ScopeInfo
	Vault   *vaultfile.VaultFile
	Aliases *alias.Map
	Dek     []byte
	Cache   session.Cache
}

// LoadVault tries the session cache first, else prompts for the
// passphrase, derives the KEK, unwraps the DEK, decrypts the body, and
// opportunistically repopulates the cache.
func LoadVault(scope paths.ScopeInfo, selfExe string) (*Loaded, error) {
	if !vaultfile.Exists(scope.VaultPath) {
		return nil, vaulterr.ErrVaultNotFound
	}

	vf, err := vaultfile.Read(scope.VaultPath)
	if err != nil {
		return nil, err
	}

	cache, cacheErr := session.Select(selfExe)
	if cacheErr == nil && cache.Available() {
		if dek, ok, err := cache.Fetch(scope.VaultPath); err == nil && ok {
			aliases, err := vaultfile.DecryptWithDEK(vf, dek)
			if err != nil {
				crypto.ClearBytes(dek)
				return nil, err
			}
			return &Loaded{Scope: scope, Vault: vf, Aliases: aliases, Dek: dek, Cache: cache}, nil
		}
	}

	passphrase, err := prompt.Passphrase("Passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase)

	aliases, dek, err := vaultfile.DecryptWithPassphrase(vf, passphrase)
	if err != nil {
		return nil, err
	}

	if cacheErr == nil && cache.Available() {
		_ = cache.Store(scope.VaultPath, dek, session.DefaultTTL)
	}

	return &Loaded{Scope: scope, Vault: vf, Aliases: aliases, Dek: dek, Cache: cache}, nil
}

// Save re-seals the (mutated) alias map under the DEK and atomically
// rewrites the vault file, then refreshes the cache entry so the new
// window starts from this save rather than the original unlock.
func (l *Loaded) Save() error {
	if err := vaultfile.Save(l.Scope.VaultPath, l.Vault, l.Aliases, l.Dek); err != nil {
		return err
	}
	if l.Cache != nil && l.Cache.Available() {
		_ = l.Cache.Store(l.Scope.VaultPath, l.Dek, session.DefaultTTL)
	}
	return nil
}

// Close zeroes the DEK. Call when done with a Loaded vault.
func (l *Loaded) Close() {
	crypto.ClearBytes(l.Dek)
}

// CreateVault creates a new vault at scope's path, prompting for and
// confirming a passphrase, and returns a Loaded ready for immediate use
// (e.g. adding aliases and calling Save).
func CreateVault(scope paths.ScopeInfo, selfExe string) (*Loaded, error) {
	passphrase, err := prompt.Passphrase("New passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase)

	if len(passphrase) < 8 {
		return nil, vaulterr.ErrPassphraseTooShort
	}

	confirm, err := prompt.Passphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(confirm)

	if !constantTimeEqual(passphrase, confirm) {
		return nil, vaulterr.ErrConfirmationMismatch
	}

	dek, err := vaultfile.Create(scope.VaultPath, passphrase)
	if err != nil {
		return nil, err
	}

	vf, err := vaultfile.Read(scope.VaultPath)
	if err != nil {
		crypto.ClearBytes(dek)
		return nil, err
	}
	aliases, err := vaultfile.DecryptWithDEK(vf, dek)
	if err != nil {
		crypto.ClearBytes(dek)
		return nil, err
	}

	cache, cacheErr := session.Select(selfExe)
	if cacheErr != nil {
		cache = nil
	}

	return &Loaded{Scope: scope, Vault: vf, Aliases: aliases, Dek: dek, Cache: cache}, nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
