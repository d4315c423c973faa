package services

import (
	"encoding/hex"
	"testing"
)

func TestCredentialHasher_HashPassword(t *testing.T) {
	hasher := newTestHasher()

	t.Run("Deterministic", func(t *testing.T) {
		first := hasher.HashPassword("admin123")
		second := hasher.HashPassword("admin123")
		if first != second {
			t.Errorf("Expected identical fingerprints, got %s and %s", first, second)
		}
	})

	t.Run("Fixed_Length_Hex", func(t *testing.T) {
		fingerprint := hasher.HashPassword("admin123")
		if len(fingerprint) != 64 {
			t.Errorf("Expected 64 hex chars, got %d", len(fingerprint))
		}
		if _, err := hex.DecodeString(fingerprint); err != nil {
			t.Errorf("Fingerprint is not valid hex: %v", err)
		}
	})

	t.Run("Different_Inputs_Differ", func(t *testing.T) {
		if hasher.HashPassword("admin123") == hasher.HashPassword("admin124") {
			t.Error("Different passwords produced the same fingerprint")
		}
	})

	t.Run("Key_Changes_Fingerprint", func(t *testing.T) {
		other := NewCredentialHasher("another-password-key", "test-token-key")
		if hasher.HashPassword("admin123") == other.HashPassword("admin123") {
			t.Error("Different keys produced the same fingerprint")
		}
	})
}

func TestCredentialHasher_VerifyPassword(t *testing.T) {
	hasher := newTestHasher()
	fingerprint := hasher.HashPassword("secret")

	if !hasher.VerifyPassword("secret", fingerprint) {
		t.Error("Expected matching password to verify")
	}
	if hasher.VerifyPassword("wrong", fingerprint) {
		t.Error("Expected wrong password to fail verification")
	}
	if hasher.VerifyPassword("secret", "") {
		t.Error("Expected empty fingerprint to fail verification")
	}
}

func TestCredentialHasher_DeriveToken(t *testing.T) {
	hasher := newTestHasher()

	t.Run("Deterministic", func(t *testing.T) {
		first := hasher.DeriveToken("alice@x.com", "pw1")
		second := hasher.DeriveToken("alice@x.com", "pw1")
		if first != second {
			t.Errorf("Expected identical tokens, got %s and %s", first, second)
		}
	})

	t.Run("Either_Input_Changes_Token", func(t *testing.T) {
		base := hasher.DeriveToken("alice@x.com", "pw1")
		if base == hasher.DeriveToken("bob@x.com", "pw1") {
			t.Error("Changing the email did not change the token")
		}
		if base == hasher.DeriveToken("alice@x.com", "pw2") {
			t.Error("Changing the password did not change the token")
		}
	})

	t.Run("Independent_From_Password_Fingerprint", func(t *testing.T) {
		// A stored fingerprint must never double as a token.
		token := hasher.DeriveToken("alice@x.com", "pw1")
		if token == hasher.HashPassword("alice@x.com|pw1") {
			t.Error("Token derivation collides with the password fingerprint")
		}
	})
}
