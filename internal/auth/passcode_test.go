package auth

import (
	"errors"
	"testing"
)

func TestPasscodeRoundtrip(t *testing.T) {
	hash, err := HashPasscode("sesam")
	if err != nil {
		t.Fatalf("HashPasscode failed: %v", err)
	}
	if hash == "sesam" {
		t.Fatal("hash must not be the plaintext passcode")
	}

	if err := VerifyPasscode(hash, "sesam"); err != nil {
		t.Errorf("correct passcode rejected: %v", err)
	}
	if err := VerifyPasscode(hash, "wrong"); !errors.Is(err, ErrInvalidPasscode) {
		t.Errorf("expected ErrInvalidPasscode, got %v", err)
	}
}

func TestVerifyPasscode_NoHashSet(t *testing.T) {
	if err := VerifyPasscode("", "anything"); err != nil {
		t.Errorf("room without passcode must accept any attempt, got %v", err)
	}
}

func TestHashPasscode_Weak(t *testing.T) {
	if _, err := HashPasscode("ab"); !errors.Is(err, ErrWeakPasscode) {
		t.Errorf("expected ErrWeakPasscode, got %v", err)
	}
}
