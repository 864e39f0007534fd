package crypto

import (
	"bytes"
	"testing"
)

func TestNewKdfParams(t *testing.T) {
	p, err := NewKdfParams()
	if err != nil {
		t.Fatalf("NewKdfParams failed: %v", err)
	}
	if len(p.Salt) != 16 {
		t.Errorf("expected 16-byte salt, got %d", len(p.Salt))
	}
	if p.MemoryKiB < MinMemoryKiB || p.MemoryKiB > MaxMemoryKiB {
		t.Errorf("memory %d out of range [%d,%d]", p.MemoryKiB, MinMemoryKiB, MaxMemoryKiB)
	}
	if p.Time < MinTime || p.Time > MaxTime {
		t.Errorf("time %d out of range [%d,%d]", p.Time, MinTime, MaxTime)
	}

	p2, err := NewKdfParams()
	if err != nil {
		t.Fatalf("NewKdfParams failed: %v", err)
	}
	if bytes.Equal(p.Salt, p2.Salt) {
		t.Error("two generated salts should not be equal")
	}
}

func TestKdfParamsClamp(t *testing.T) {
	p := KdfParams{MemoryKiB: 1, Time: 0, Lanes: 0}.clamp()
	if p.MemoryKiB != MinMemoryKiB {
		t.Errorf("expected memory clamped to %d, got %d", MinMemoryKiB, p.MemoryKiB)
	}
	if p.Time != MinTime {
		t.Errorf("expected time clamped to %d, got %d", MinTime, p.Time)
	}
	if p.Lanes != DefaultLanes {
		t.Errorf("expected lanes defaulted to %d, got %d", DefaultLanes, p.Lanes)
	}

	p2 := KdfParams{MemoryKiB: MaxMemoryKiB + 1, Time: MaxTime + 1, Lanes: 1}.clamp()
	if p2.MemoryKiB != MaxMemoryKiB {
		t.Errorf("expected memory clamped to %d, got %d", MaxMemoryKiB, p2.MemoryKiB)
	}
	if p2.Time != MaxTime {
		t.Errorf("expected time clamped to %d, got %d", MaxTime, p2.Time)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	params := KdfParams{Salt: bytes.Repeat([]byte{7}, 16), MemoryKiB: MinMemoryKiB, Time: MinTime, Lanes: 1}
	key1 := DeriveKey([]byte("correct horse battery staple"), params)
	key2 := DeriveKey([]byte("correct horse battery staple"), params)
	if !bytes.Equal(key1, key2) {
		t.Error("same passphrase and params should derive the same key")
	}
	if len(key1) != KeyLength {
		t.Errorf("expected key length %d, got %d", KeyLength, len(key1))
	}

	other := KdfParams{Salt: bytes.Repeat([]byte{9}, 16), MemoryKiB: MinMemoryKiB, Time: MinTime, Lanes: 1}
	key3 := DeriveKey([]byte("correct horse battery staple"), other)
	if bytes.Equal(key1, key3) {
		t.Error("different salt should derive a different key")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := SecureRandom(KeyLength)
	if err != nil {
		t.Fatalf("SecureRandom failed: %v", err)
	}
	plaintext := []byte("s3cr3t-value")
	aad := []byte("context")

	nonce, ciphertext, err := Encrypt(plaintext, key, aad)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(nonce) != NonceLength {
		t.Errorf("expected nonce length %d, got %d", NonceLength, len(nonce))
	}

	recovered, err := Decrypt(ciphertext, key, nonce, aad)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(plaintext, recovered) {
		t.Errorf("expected %q, got %q", plaintext, recovered)
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key, _ := SecureRandom(KeyLength)
	wrongKey, _ := SecureRandom(KeyLength)
	nonce, ciphertext, err := Encrypt([]byte("value"), key, nil)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := Decrypt(ciphertext, wrongKey, nonce, nil); err != ErrDecryptionFailed {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	key, _ := SecureRandom(KeyLength)
	nonce, ciphertext, err := Encrypt([]byte("value"), key, nil)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	tampered := append([]byte{}, ciphertext...)
	tampered[0] ^= 0xFF

	if _, err := Decrypt(tampered, key, nonce, nil); err != ErrDecryptionFailed {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestClearBytesZeroes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ClearBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %d not cleared: %d", i, v)
		}
	}
}
