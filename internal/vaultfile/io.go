package vaultfile

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/obscura-corp/obscura-cli/internal/alias"
	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

// Exists reports whether a vault file is present at path.
func Exists(path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// Create builds a brand-new vault at path: fresh KDF params, fresh DEK
// wrapped under the passphrase-derived KEK, and an empty alias body sealed
// under the DEK. Returns the DEK so the caller can immediately populate the
// session cache without re-deriving anything.
func Create(path string, passphrase []byte) (dek []byte, err error) {
	if Exists(path) {
		return nil, vaulterr.ErrVaultExists
	}

	kdfParams, err := crypto.NewKdfParams()
	if err != nil {
		return nil, err
	}
	kek := crypto.DeriveKey(passphrase, kdfParams)
	defer crypto.ClearBytes(kek)

	dek, err = crypto.GenerateDEK()
	if err != nil {
		return nil, err
	}

	wrapped, err := crypto.WrapKey(dek, kek)
	if err != nil {
		crypto.ClearBytes(dek)
		return nil, err
	}

	body, err := sealBody(alias.NewMap(), dek)
	if err != nil {
		crypto.ClearBytes(dek)
		return nil, err
	}

	vf := VaultFile{
		Version:   CurrentVersion,
		CreatedAt: time.Now(),
		Kdf:       kdfParamsFromCrypto(kdfParams),
		DekWrapped: EncryptedData{
			NonceB64:      base64.StdEncoding.EncodeToString(wrapped.Nonce),
			CiphertextB64: base64.StdEncoding.EncodeToString(wrapped.Ciphertext),
		},
		Body: body,
	}

	if err := writeAtomic(path, vf); err != nil {
		crypto.ClearBytes(dek)
		return nil, err
	}
	return dek, nil
}

// Read loads and parses the vault file at path without decrypting anything.
func Read(path string) (*VaultFile, error) {
	if !Exists(path) {
		return nil, vaulterr.ErrVaultNotFound
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, vaulterr.ErrFilePermission
	}
	var vf VaultFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, vaulterr.ErrInvalidVaultFormat
	}
	if vf.Version != CurrentVersion {
		return nil, vaulterr.ErrInvalidVaultFormat
	}
	return &vf, nil
}

// DecryptWithPassphrase unwraps the DEK using a passphrase-derived KEK
// (built from the vault's own stored KDF parameters) and decrypts the body.
// Returns the alias map alongside the DEK so callers can populate the
// session cache.
func DecryptWithPassphrase(vf *VaultFile, passphrase []byte) (*alias.Map, []byte, error) {
	kdfParams, err := vf.Kdf.toCrypto()
	if err != nil {
		return nil, nil, vaulterr.ErrDecryptionFailed
	}
	kek := crypto.DeriveKey(passphrase, kdfParams)
	defer crypto.ClearBytes(kek)

	wrapped, err := wrappedKeyFrom(vf.DekWrapped)
	if err != nil {
		return nil, nil, err
	}
	dek, err := crypto.UnwrapKey(wrapped, kek)
	if err != nil {
		return nil, nil, vaulterr.ErrDecryptionFailed
	}

	m, err := openBody(vf.Body, dek)
	if err != nil {
		crypto.ClearBytes(dek)
		return nil, nil, err
	}
	return m, dek, nil
}

// DecryptWithDEK opens the body directly using an already-unwrapped DEK,
// e.g. recovered from the session cache without re-prompting.
func DecryptWithDEK(vf *VaultFile, dek []byte) (*alias.Map, error) {
	return openBody(vf.Body, dek)
}

// Save re-seals m under dek and atomically rewrites the vault file,
// preserving the existing KDF parameters and wrapped DEK.
func Save(path string, vf *VaultFile, m *alias.Map, dek []byte) error {
	body, err := sealBody(m, dek)
	if err != nil {
		return err
	}
	vf.Body = body
	return writeAtomic(path, *vf)
}

func sealBody(m *alias.Map, dek []byte) (EncryptedData, error) {
	plaintext, err := json.Marshal(m)
	if err != nil {
		return EncryptedData{}, vaulterr.ErrEncryptionFailed
	}
	return sealEnvelope(plaintext, dek, nil)
}

func openBody(e EncryptedData, dek []byte) (*alias.Map, error) {
	plaintext, err := openEnvelope(e, dek, nil)
	if err != nil {
		return nil, vaulterr.ErrDecryptionFailed
	}
	var m alias.Map
	if err := json.Unmarshal(plaintext, &m); err != nil {
		return nil, vaulterr.ErrInvalidVaultFormat
	}
	if m.Aliases == nil {
		m.Aliases = make(map[string]alias.Entry)
	}
	return &m, nil
}

func wrappedKeyFrom(e EncryptedData) (crypto.WrappedKey, error) {
	nonce, err := base64.StdEncoding.DecodeString(e.NonceB64)
	if err != nil {
		return crypto.WrappedKey{}, vaulterr.ErrDecryptionFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(e.CiphertextB64)
	if err != nil {
		return crypto.WrappedKey{}, vaulterr.ErrDecryptionFailed
	}
	return crypto.WrappedKey{Nonce: nonce, Ciphertext: ciphertext}, nil
}
