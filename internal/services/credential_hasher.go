package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CredentialHasher derives deterministic credential fingerprints and
// login tokens. The two derivations are keyed independently so a stored
// fingerprint can never be replayed as a token and vice versa. Tokens
// are intentionally deterministic: the same email and password always
// produce the same token.
type CredentialHasher struct {
	passwordKey []byte
	tokenKey    []byte
}

func NewCredentialHasher(passwordKey, tokenKey string) *CredentialHasher {
	return &CredentialHasher{
		passwordKey: []byte(passwordKey),
		tokenKey:    []byte(tokenKey),
	}
}

// HashPassword returns the hex fingerprint stored for a password.
func (h *CredentialHasher) HashPassword(password string) string {
	return h.derive(h.passwordKey, password)
}

// VerifyPassword reports whether the password matches a stored
// fingerprint, comparing in constant time.
func (h *CredentialHasher) VerifyPassword(password, fingerprint string) bool {
	computed := h.HashPassword(password)
	return hmac.Equal([]byte(computed), []byte(fingerprint))
}

// DeriveToken returns the login token for a credential pair.
func (h *CredentialHasher) DeriveToken(email, password string) string {
	return h.derive(h.tokenKey, email+"|"+password)
}

func (h *CredentialHasher) derive(key []byte, input string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(input))
	return hex.EncodeToString(mac.Sum(nil))
}
