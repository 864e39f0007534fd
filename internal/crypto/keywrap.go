package crypto

// WrappedKey is a DEK (or any 32-byte key) sealed under another key: a
// 24-byte random nonce plus the AEAD ciphertext (which carries its own
// authentication tag).
type WrappedKey struct {
	Nonce      []byte
	Ciphertext []byte
}

// GenerateDEK creates a fresh random 32-byte data-encryption key. Callers
// must ClearBytes it once they're done.
func GenerateDEK() ([]byte, error) {
	return SecureRandom(KeyLength)
}

// WrapKey seals a DEK under a KEK with empty associated data, per the vault
// file format's dek_wrapped envelope.
func WrapKey(dek, kek []byte) (WrappedKey, error) {
	if len(dek) != KeyLength {
		return WrappedKey{}, ErrInvalidKeyLength
	}
	nonce, ciphertext, err := Encrypt(dek, kek, nil)
	if err != nil {
		return WrappedKey{}, err
	}
	return WrappedKey{Nonce: nonce, Ciphertext: ciphertext}, nil
}

// UnwrapKey recovers the DEK from a WrappedKey. Any mismatch (wrong KEK,
// tampered ciphertext, wrong lengths) surfaces as ErrDecryptionFailed.
func UnwrapKey(w WrappedKey, kek []byte) ([]byte, error) {
	dek, err := Decrypt(w.Ciphertext, kek, w.Nonce, nil)
	if err != nil {
		return nil, err
	}
	if len(dek) != KeyLength {
		ClearBytes(dek)
		return nil, ErrDecryptionFailed
	}
	return dek, nil
}
