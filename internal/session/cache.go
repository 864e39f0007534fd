// Package session implements DEK caching across command invocations so a
// user doesn't have to re-enter their passphrase for every call while a
// vault is "unlocked". Two backends share one contract: a background
// Unix-socket agent when one can be reached or started, falling back to an
// encrypted on-disk file guarded by an advisory lock.
package session

import "time"

// Cache is the shared contract both backends implement.
type Cache interface {
	// Store caches dek for vaultPath for ttl. Implementations copy dek
	// rather than retain the caller's slice.
	Store(vaultPath string, dek []byte, ttl time.Duration) error
	// Fetch returns the cached DEK for vaultPath, or ok=false if absent or
	// expired. Callers must ClearBytes the result after use.
	Fetch(vaultPath string) (dek []byte, ok bool, err error)
	// Clear removes the cache entry for vaultPath.
	Clear(vaultPath string) error
	// ClearAll removes every cached entry, e.g. on `obscura lock` with no scope flag.
	ClearAll() error
	// Available reports whether this backend is currently usable.
	Available() bool
}

// DefaultTTL is the cache lifetime used by commands that populate the
// cache opportunistically rather than via an explicit `unlock --timeout`.
const DefaultTTL = 15 * time.Minute
