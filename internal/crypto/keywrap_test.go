package crypto

import "testing"

func TestWrapUnwrapRoundTrip(t *testing.T) {
	kek, err := SecureRandom(KeyLength)
	if err != nil {
		t.Fatalf("SecureRandom failed: %v", err)
	}
	dek, err := GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK failed: %v", err)
	}

	wrapped, err := WrapKey(dek, kek)
	if err != nil {
		t.Fatalf("WrapKey failed: %v", err)
	}

	unwrapped, err := UnwrapKey(wrapped, kek)
	if err != nil {
		t.Fatalf("UnwrapKey failed: %v", err)
	}
	if string(unwrapped) != string(dek) {
		t.Error("unwrapped DEK does not match the original")
	}
}

func TestUnwrapWithWrongKekFails(t *testing.T) {
	kek, _ := SecureRandom(KeyLength)
	wrongKek, _ := SecureRandom(KeyLength)
	dek, _ := GenerateDEK()

	wrapped, err := WrapKey(dek, kek)
	if err != nil {
		t.Fatalf("WrapKey failed: %v", err)
	}

	if _, err := UnwrapKey(wrapped, wrongKek); err == nil {
		t.Error("expected an error unwrapping with the wrong KEK")
	}
}

func TestGenerateDEKIsRandom(t *testing.T) {
	dek1, err := GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK failed: %v", err)
	}
	dek2, err := GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK failed: %v", err)
	}
	if len(dek1) != KeyLength {
		t.Errorf("expected DEK length %d, got %d", KeyLength, len(dek1))
	}
	if string(dek1) == string(dek2) {
		t.Error("two generated DEKs should not be equal")
	}
}
