// Package filecache implements the encrypted-file-backed session store used
// when the agent daemon isn't available: entries live in one JSON document,
// itself sealed under a key derived from stable per-user identity, written
// under an exclusive advisory lock.
//
// The session key is derived only from the user name, home directory and
// host name, so anyone able to run code as the same local user can derive
// it too. The encryption guards against casual inspection and against a
// copied session file read elsewhere; it is defense in depth, not a secrecy
// boundary against local-user access.
package filecache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/crypto/argon2"

	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

const sessionAAD = "obscura_session"
const sessionSalt = "obscura_session_salt"

type entry struct {
	DekB64    string    `json:"dek_b64"`
	ExpiresAt time.Time `json:"expires_at"`
}

type file struct {
	Entries map[string]entry `json:"entries"`
}

// Store is the file-backed Cache implementation.
type Store struct {
	path string
}

// New returns a Store persisting to path (typically paths.SessionFilePath()).
func New(path string) *Store {
	return &Store{path: path}
}

var (
	sessionKeyOnce sync.Once
	sessionKey     []byte
)

// deriveSessionKey stretches stable per-user identity (not a user secret)
// into a 32-byte key with a fixed salt, so every invocation by the same
// local user on the same machine reaches the same key without needing to
// store one anywhere.
func deriveSessionKey() []byte {
	sessionKeyOnce.Do(func() {
		identity := fmt.Sprintf("%s-%s-%s", currentUser(), os.Getenv("HOME"), hostname())
		sessionKey = argon2.IDKey([]byte(identity), []byte(sessionSalt), 1, 64*1024, 1, crypto.KeyLength)
	})
	return sessionKey
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "unknown"
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

func (s *Store) load() (*file, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &file{Entries: make(map[string]entry)}, nil
		}
		return nil, vaulterr.ErrFilePermission
	}
	if len(data) == 0 {
		return &file{Entries: make(map[string]entry)}, nil
	}

	key := deriveSessionKey()
	if len(data) < crypto.NonceLength {
		return nil, vaulterr.ErrDecryptionFailed
	}
	nonce, ciphertext := data[:crypto.NonceLength], data[crypto.NonceLength:]
	plaintext, err := crypto.Decrypt(ciphertext, key, nonce, []byte(sessionAAD))
	if err != nil {
		return nil, vaulterr.ErrDecryptionFailed
	}

	var f file
	if err := json.Unmarshal(plaintext, &f); err != nil {
		return nil, vaulterr.ErrInvalidVaultFormat
	}
	if f.Entries == nil {
		f.Entries = make(map[string]entry)
	}
	return &f, nil
}

func (s *Store) save(f *file) error {
	plaintext, err := json.Marshal(f)
	if err != nil {
		return vaulterr.ErrEncryptionFailed
	}
	key := deriveSessionKey()
	nonce, ciphertext, err := crypto.Encrypt(plaintext, key, []byte(sessionAAD))
	if err != nil {
		return vaulterr.ErrEncryptionFailed
	}
	blob := append(nonce, ciphertext...)

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return vaulterr.ErrFilePermission
	}
	defer lock.Unlock()

	tempPath := s.path + ".tmp"
	f2, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return vaulterr.ErrFilePermission
	}
	if _, err := f2.Write(blob); err != nil {
		f2.Close()
		return vaulterr.ErrFilePermission
	}
	if err := f2.Sync(); err != nil {
		f2.Close()
		return vaulterr.ErrFilePermission
	}
	if err := f2.Close(); err != nil {
		return vaulterr.ErrFilePermission
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return vaulterr.ErrFilePermission
	}
	return os.Chmod(s.path, 0o600)
}

// purgeExpired drops entries whose TTL has passed, returning whether
// anything changed.
func purgeExpired(f *file) bool {
	now := time.Now()
	dirty := false
	for path, e := range f.Entries {
		if now.After(e.ExpiresAt) {
			delete(f.Entries, path)
			dirty = true
		}
	}
	return dirty
}

func (s *Store) Store(vaultPath string, dek []byte, ttl time.Duration) error {
	f, err := s.load()
	if err != nil {
		f = &file{Entries: make(map[string]entry)}
	}
	purgeExpired(f)
	f.Entries[vaultPath] = entry{
		DekB64:    base64.StdEncoding.EncodeToString(dek),
		ExpiresAt: time.Now().Add(ttl),
	}
	return s.save(f)
}

func (s *Store) Fetch(vaultPath string) ([]byte, bool, error) {
	f, err := s.load()
	if err != nil {
		return nil, false, err
	}
	if purgeExpired(f) {
		_ = s.save(f)
	}
	e, ok := f.Entries[vaultPath]
	if !ok {
		return nil, false, nil
	}
	dek, err := base64.StdEncoding.DecodeString(e.DekB64)
	if err != nil || len(dek) != crypto.KeyLength {
		return nil, false, vaulterr.ErrDecryptionFailed
	}
	return dek, true, nil
}

func (s *Store) Clear(vaultPath string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := f.Entries[vaultPath]; !ok {
		return nil
	}
	delete(f.Entries, vaultPath)
	return s.save(f)
}

func (s *Store) ClearAll() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return vaulterr.ErrFilePermission
	}
	return nil
}

// Available always reports true. Store starts from an empty document when
// the existing file can't be read; Fetch and Clear return such read errors
// to the caller instead.
func (s *Store) Available() bool {
	return true
}
