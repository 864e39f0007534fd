// Package vaultfile defines the on-disk JSON vault format and its atomic,
// fsync-then-rename write path.
package vaultfile

import (
	"encoding/base64"
	"time"

	"github.com/obscura-corp/obscura-cli/internal/crypto"
)

const CurrentVersion = 1

// EncryptedData is one AEAD envelope: a nonce and its ciphertext (which
// carries its own authentication tag), both base64-encoded for JSON.
type EncryptedData struct {
	NonceB64      string `json:"nonce_b64"`
	CiphertextB64 string `json:"ciphertext_b64"`
}

func sealEnvelope(plaintext, key, aad []byte) (EncryptedData, error) {
	nonce, ciphertext, err := crypto.Encrypt(plaintext, key, aad)
	if err != nil {
		return EncryptedData{}, err
	}
	return EncryptedData{
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func openEnvelope(e EncryptedData, key, aad []byte) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(e.NonceB64)
	if err != nil {
		return nil, crypto.ErrInvalidNonceLength
	}
	ciphertext, err := base64.StdEncoding.DecodeString(e.CiphertextB64)
	if err != nil {
		return nil, crypto.ErrDecryptionFailed
	}
	return crypto.Decrypt(ciphertext, key, nonce, aad)
}

// KdfParamsInner is the Argon2id cost triple.
type KdfParamsInner struct {
	MemKiB uint32 `json:"mem_kib"`
	Time   uint32 `json:"time"`
	Lanes  uint8  `json:"lanes"`
}

// KdfParams is the stored key-derivation configuration, read back verbatim
// on unlock so a vault's cost never silently drifts from what it was
// created with.
type KdfParams struct {
	Alg    string         `json:"alg"`
	SaltB64 string        `json:"salt_b64"`
	Params KdfParamsInner `json:"params"`
}

func kdfParamsFromCrypto(p crypto.KdfParams) KdfParams {
	return KdfParams{
		Alg:     "argon2id",
		SaltB64: base64.StdEncoding.EncodeToString(p.Salt),
		Params: KdfParamsInner{
			MemKiB: p.MemoryKiB,
			Time:   p.Time,
			Lanes:  p.Lanes,
		},
	}
}

func (k KdfParams) toCrypto() (crypto.KdfParams, error) {
	salt, err := base64.StdEncoding.DecodeString(k.SaltB64)
	if err != nil {
		return crypto.KdfParams{}, crypto.ErrInvalidKeyLength
	}
	return crypto.KdfParams{
		Salt:      salt,
		MemoryKiB: k.Params.MemKiB,
		Time:      k.Params.Time,
		Lanes:     k.Params.Lanes,
	}, nil
}

// VaultFile is the complete JSON document persisted at a vault's path.
// Everything below body is plaintext metadata; body is itself one AEAD
// envelope wrapping the serialized alias map under the DEK.
type VaultFile struct {
	Version    int           `json:"version"`
	CreatedAt  time.Time     `json:"created_at"`
	Kdf        KdfParams     `json:"kdf"`
	DekWrapped EncryptedData `json:"dek_wrapped"`
	Body       EncryptedData `json:"body"`
}
