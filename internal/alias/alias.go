// Package alias implements the plaintext alias map stored inside a vault's
// body envelope: each alias name maps to an individually re-encrypted
// secret value plus lifecycle timestamps.
package alias

import (
	"encoding/base64"
	"sort"
	"time"

	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

// Entry is one alias's stored value, independently AEAD-encrypted under the
// vault's DEK — defense in depth behind the body envelope.
type Entry struct {
	NonceB64      string     `json:"nonce_b64"`
	CiphertextB64 string     `json:"ciphertext_b64"`
	CreatedAt     time.Time  `json:"created_at"`
	RotatedAt     *time.Time `json:"rotated_at,omitempty"`
}

// Map is the plaintext alias->Entry mapping serialized into the vault body.
type Map struct {
	Aliases map[string]Entry `json:"aliases"`
}

// NewMap returns an empty alias map, as written into a freshly created vault.
func NewMap() *Map {
	return &Map{Aliases: make(map[string]Entry)}
}

func encryptValue(value string, dek []byte) (Entry, error) {
	nonce, ciphertext, err := crypto.Encrypt([]byte(value), dek, nil)
	if err != nil {
		return Entry{}, vaulterr.ErrEncryptionFailed
	}
	return Entry{
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func decryptValue(e Entry, dek []byte) (string, error) {
	nonce, err := base64.StdEncoding.DecodeString(e.NonceB64)
	if err != nil {
		return "", vaulterr.ErrDecryptionFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(e.CiphertextB64)
	if err != nil {
		return "", vaulterr.ErrDecryptionFailed
	}
	plaintext, err := crypto.Decrypt(ciphertext, dek, nonce, nil)
	if err != nil {
		return "", vaulterr.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// Add inserts or overwrites an alias. Callers are responsible for
// confirming overwrite with the user before calling this.
func (m *Map) Add(name, value string, dek []byte) error {
	entry, err := encryptValue(value, dek)
	if err != nil {
		return err
	}
	entry.CreatedAt = time.Now()
	m.Aliases[name] = entry
	return nil
}

// Get returns the decrypted value, or ok=false if the alias is absent —
// absence is a normal outcome, not an error.
func (m *Map) Get(name string, dek []byte) (value string, ok bool, err error) {
	entry, present := m.Aliases[name]
	if !present {
		return "", false, nil
	}
	value, err = decryptValue(entry, dek)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Has reports whether name is present, without decrypting anything.
func (m *Map) Has(name string) bool {
	_, ok := m.Aliases[name]
	return ok
}

// Remove deletes an alias, returning whether it was present. Idempotent at
// the map level — callers treat "not present" as a user-visible error.
func (m *Map) Remove(name string) bool {
	if _, ok := m.Aliases[name]; !ok {
		return false
	}
	delete(m.Aliases, name)
	return true
}

// Rotate replaces an alias's value, preserving CreatedAt and setting
// RotatedAt to now. Returns whether the alias existed.
func (m *Map) Rotate(name, newValue string, dek []byte) (bool, error) {
	existing, ok := m.Aliases[name]
	if !ok {
		return false, nil
	}
	entry, err := encryptValue(newValue, dek)
	if err != nil {
		return false, err
	}
	entry.CreatedAt = existing.CreatedAt
	now := time.Now()
	entry.RotatedAt = &now
	m.Aliases[name] = entry
	return true, nil
}

// List returns alias names in sorted order. Sorting here (rather than only
// at the CLI boundary) keeps every caller — JSON output, dotenv export,
// human-readable listing — consistent for free.
func (m *Map) List() []string {
	names := make([]string, 0, len(m.Aliases))
	for name := range m.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
