package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for export key derivation. Interactive-login strength.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	derivedKeyLen = 32
)

// DeriveKey stretches a passphrase into a 32-byte AES key using scrypt.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, derivedKeyLen)
}

// HashPassphrase returns a hex digest used only to verify a stored passphrase.
func HashPassphrase(pass string) string {
	sum := sha256.Sum256([]byte(pass))
	return hex.EncodeToString(sum[:])
}

// ValidatePassphrase enforces a minimal strength policy.
func ValidatePassphrase(pass string) error {
	if len(pass) < 8 {
		return fmt.Errorf("passphrase must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pass {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("passphrase must contain uppercase, lowercase, and digit")
	}
	return nil
}
