package services

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates input beyond 72 bytes, so passwords are condensed
// to a fixed-size SHA-256 hex digest before hashing. Hashes written before the
// condensation step exist in the wild; VerifyPassword still accepts them.

// passwordDigest returns the SHA-256 hex digest of the UTF-8 password bytes.
func passwordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes a plain password of any length.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passwordDigest(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plain password against a stored hash. The condensed
// form is tried first; the legacy raw form is only attempted for passwords
// that fit under bcrypt's 72-byte ceiling. Malformed hashes verify false.
func VerifyPassword(password, hashed string) bool {
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(passwordDigest(password))) == nil {
		return true
	}
	if len(password) <= 72 {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
	}
	return false
}
