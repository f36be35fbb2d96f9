package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

const (
	DefaultTokenLength = 32 // 256 bits
)

// TokenPair is a freshly minted opaque credential. The raw token goes to the
// client; only the hash is ever stored.
type TokenPair struct {
	Token string // value returned to client
	Hash  string // value in storage
}

// GenerateToken mints a random url-safe opaque token and its storage hash.
func GenerateToken() (*TokenPair, error) {
	bytes := make([]byte, DefaultTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}

	token := base64.RawURLEncoding.EncodeToString(bytes)

	return &TokenPair{
		Token: token,
		Hash:  HashToken(token),
	}, nil
}

// HashToken derives the storage lookup key for an opaque token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// VerifyTokenHash reports whether token matches storedHash.
// Constant-time comparison to prevent timing attacks.
func VerifyTokenHash(token, storedHash string) bool {
	if token == "" || storedHash == "" {
		return false
	}
	tokenHash := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(storedHash)) == 1
}
