// Package vaulterr collects the user-visible error kinds shared across the
// vault's layers. Cryptographic and file-system failures are deliberately
// coarse — see each sentinel's comment — so that diagnostics never leak
// enough detail to help an attacker distinguish failure causes.
package vaulterr

import (
	"errors"
	"fmt"
)

var (
	// ErrVaultNotFound means the addressed scope has no vault file yet.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultExists means vaultfile.Create was asked to create a vault that's already there.
	ErrVaultExists = errors.New("vault already exists")
	// ErrInvalidVaultFormat covers unknown versions and malformed JSON alike.
	ErrInvalidVaultFormat = errors.New("invalid vault format")
	// ErrDecryptionFailed collapses bad passphrase, tamper, and malformed
	// envelopes into one opaque outcome.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrEncryptionFailed collapses any failure to seal a new envelope.
	ErrEncryptionFailed = errors.New("encryption failed")
	// ErrFilePermission covers I/O and path-canonicalization failures alike,
	// to avoid leaking filesystem structure in diagnostics.
	ErrFilePermission = errors.New("file permission error")
	// ErrPassphraseTooShort is surfaced during creation/unlock prompts.
	ErrPassphraseTooShort = errors.New("passphrase must be at least 8 characters")
	// ErrConfirmationMismatch is surfaced when a passphrase confirmation disagrees.
	ErrConfirmationMismatch = errors.New("passphrase confirmation does not match")
	// ErrInvalidTimeout is surfaced by `unlock --timeout 0`.
	ErrInvalidTimeout = errors.New("invalid timeout value")
	// ErrNoCommand is surfaced by `run` with nothing after `--`.
	ErrNoCommand = errors.New("no command provided to run")
	// ErrBothScopesForced is surfaced when --global and --project are both set.
	ErrBothScopesForced = errors.New("cannot force both global and project scope")
	// ErrAgentNotRunning means the caching agent isn't reachable.
	ErrAgentNotRunning = errors.New("agent not running")
	// ErrCacheUnavailable means no session-cache backend could be used.
	ErrCacheUnavailable = errors.New("session cache unavailable")
)

// AliasNotFoundError is the alias-not-found condition, kept distinct and
// user-visible rather than collapsed with other errors.
type AliasNotFoundError struct {
	Alias string
}

func (e *AliasNotFoundError) Error() string {
	return fmt.Sprintf("Alias '%s' not found", e.Alias)
}

// IsAliasNotFound reports whether err is an AliasNotFoundError.
func IsAliasNotFound(err error) bool {
	var e *AliasNotFoundError
	return errors.As(err, &e)
}

// FileExistsError is surfaced specifically on `export --dotenv` so users
// know to retry with --overwrite, rather than collapsing into a generic
// file-permission error.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file '%s' already exists", e.Path)
}

// IsFileExists reports whether err is a FileExistsError.
func IsFileExists(err error) bool {
	var e *FileExistsError
	return errors.As(err, &e)
}
