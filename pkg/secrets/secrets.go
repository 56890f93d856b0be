package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes gives 256 bits of entropy, enough for tokens to be globally
// unique with overwhelming probability without any coordination.
const tokenBytes = 32

// GenerateToken creates a cryptographically random opaque token, encoded
// base64url so it round-trips byte-for-byte through headers and cookies.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
