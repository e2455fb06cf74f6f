package staff

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPIN returns the lowercase hex SHA-256 digest of a plaintext PIN.
//
// The hash is deliberately unsalted: the credential store is looked up by
// hash (one index probe per request), which requires a deterministic
// digest. The PIN space is small, so this is an obfuscation measure rather
// than a password-grade KDF; the store itself must stay trusted.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// VerifyPIN compares a plaintext PIN against a stored hash in constant time.
func VerifyPIN(pin, hash string) bool {
	candidate := HashPIN(pin)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}
