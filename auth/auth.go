// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrSecretMismatch = errors.New("secret does not match")

// HashSecret derives the stored form of a voter secret.
// Deterministic for a given salt, so it can be compared on login.
func HashSecret(secret, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(secret))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VerifySecret checks a plaintext secret against its stored hash in constant time
func VerifySecret(secret, storedHash, salt string) error {
	expected := HashSecret(secret, salt)
	if !hmac.Equal([]byte(storedHash), []byte(expected)) {
		return ErrSecretMismatch
	}
	return nil
}
