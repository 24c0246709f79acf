package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash derives a salted bcrypt digest from a plaintext password. No
// strength policy is enforced here; callers may submit any non-empty
// string.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext password matches the stored digest.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
