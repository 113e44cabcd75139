// internal/app/system/auth/keys.go
package auth

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Key purposes. Each yields an independent key from the one configured
// session secret.
const (
	PurposeCookieHash  = "trueportme/cookie-hash"
	PurposeCookieBlock = "trueportme/cookie-block"
	PurposeCSRF        = "trueportme/csrf"
)

// DeriveKey expands secret into an n-byte key bound to purpose.
func DeriveKey(secret, purpose string, n int) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("derive %s: empty secret", purpose)
	}
	key := make([]byte, n)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s: %w", purpose, err)
	}
	return key, nil
}
