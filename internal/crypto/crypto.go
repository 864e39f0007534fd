// Package crypto implements the cryptographic primitives the vault is built
// on: an extended-nonce AEAD and a cost-agile password KDF. Every failure
// path collapses into one of a small set of opaque errors so that callers
// can never distinguish "wrong key" from "corrupt ciphertext".
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	KeyLength   = 32 // DEK/KEK length
	NonceLength = chacha20poly1305.NonceSizeX

	// Argon2id cost bounds per the vault's KdfParameters invariant.
	MinMemoryKiB = 65536
	MaxMemoryKiB = 524288
	MinTime      = 1
	MaxTime      = 6

	DefaultMemoryKiB = 131072
	DefaultTime      = 2
	DefaultLanes     = 1
	argon2Version    = 0x13
)

var (
	ErrInvalidKeyLength   = errors.New("invalid key length")
	ErrInvalidNonceLength = errors.New("invalid nonce length")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrEncryptionFailed   = errors.New("encryption failed")
)

// KdfParams mirrors the on-disk KdfParameters: algorithm is always
// "argon2id" for version 1 vaults, so it isn't stored here separately.
type KdfParams struct {
	Salt      []byte
	MemoryKiB uint32
	Time      uint32
	Lanes     uint8
}

// NewKdfParams builds fresh cost-agile parameters for a new vault, honoring
// the OBSCURA_KDF_MEM_KIB / OBSCURA_KDF_TIME overrides.
func NewKdfParams() (KdfParams, error) {
	salt, err := SecureRandom(16)
	if err != nil {
		return KdfParams{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	mem, t := defaultCost()
	return KdfParams{Salt: salt, MemoryKiB: mem, Time: t, Lanes: DefaultLanes}, nil
}

// clamp brings parameters read from disk back into the valid range, so a
// hand-edited or future-written vault file can't force pathological cost.
func (p KdfParams) clamp() KdfParams {
	if p.MemoryKiB < MinMemoryKiB {
		p.MemoryKiB = MinMemoryKiB
	}
	if p.MemoryKiB > MaxMemoryKiB {
		p.MemoryKiB = MaxMemoryKiB
	}
	if p.Time < MinTime {
		p.Time = MinTime
	}
	if p.Time > MaxTime {
		p.Time = MaxTime
	}
	if p.Lanes == 0 {
		p.Lanes = DefaultLanes
	}
	return p
}

var (
	costOnce    sync.Once
	defaultMem  uint32 = DefaultMemoryKiB
	defaultTime uint32 = DefaultTime
)

// defaultCost reads OBSCURA_KDF_MEM_KIB / OBSCURA_KDF_TIME once per process
// and clamps them to the supported range.
func defaultCost() (mem uint32, t uint32) {
	costOnce.Do(func() {
		if v := os.Getenv("OBSCURA_KDF_MEM_KIB"); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				defaultMem = uint32(n)
			}
		}
		if v := os.Getenv("OBSCURA_KDF_TIME"); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				defaultTime = uint32(n)
			}
		}
		clamped := KdfParams{MemoryKiB: defaultMem, Time: defaultTime}.clamp()
		defaultMem, defaultTime = clamped.MemoryKiB, clamped.Time
	})
	return defaultMem, defaultTime
}

// DeriveKey stretches a passphrase into a 32-byte KEK using the supplied
// cost-agile parameters (read back from disk when unlocking an existing
// vault, or freshly generated for a new one).
func DeriveKey(passphrase []byte, params KdfParams) []byte {
	p := params.clamp()
	key := deriveWithParams(passphrase, p)
	if key == nil {
		// Retry once at the minimum memory floor before giving up; argon2
		// only fails to allocate under genuine memory pressure.
		p.MemoryKiB = MinMemoryKiB
		key = deriveWithParams(passphrase, p)
	}
	return key
}

func deriveWithParams(passphrase []byte, p KdfParams) (key []byte) {
	defer func() {
		if recover() != nil {
			key = nil
		}
	}()
	return argon2.IDKey(passphrase, p.Salt, p.Time, p.MemoryKiB, p.Lanes, KeyLength)
}

// Encrypt seals plaintext with a fresh random 24-byte nonce under an
// XChaCha20-Poly1305 AEAD, returning the nonce and ciphertext separately so
// callers can base64-encode each independently for the on-disk envelope.
func Encrypt(plaintext, key, aad []byte) (nonce, ciphertext []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, ErrInvalidKeyLength
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, ErrEncryptionFailed
	}
	nonce, err = SecureRandom(NonceLength)
	if err != nil {
		return nil, nil, ErrEncryptionFailed
	}
	ciphertext = aead.Seal(nil, nonce, plaintext, aad)
	return nonce, ciphertext, nil
}

// Decrypt opens an AEAD envelope. Authentication-tag mismatches, wrong key
// or nonce lengths, and malformed ciphertext all collapse into
// ErrDecryptionFailed — never distinguished, to avoid oracle behavior.
func Decrypt(ciphertext, key, nonce, aad []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrDecryptionFailed
	}
	if len(nonce) != NonceLength {
		return nil, ErrDecryptionFailed
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// SecureRandom returns n cryptographically random bytes.
func SecureRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// ClearBytes zeroes a secret-bearing slice. The constant-time compare is a
// compiler barrier preventing the store from being optimized away.
func ClearBytes(data []byte) {
	if data == nil {
		return
	}
	for i := range data {
		data[i] = 0
	}
	dummy := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, dummy)
}
