package core

import "time"

// Ports define interfaces for external dependencies. All cross-record
// invariants (unique OAuthID, single-winner rotation, all-or-nothing
// account revocation) live in the backing store's atomic primitives, never
// in process-local locks, so the core stays safe to run as many instances.

// AccountStorage defines account persistence.
//
// Implementations must enforce a uniqueness constraint on OAuthID and return
// ErrAccountExists from CreateAccount when a concurrent registration won.
type AccountStorage interface {
	CreateAccount(a *Account) error

	GetAccountByID(id string) (*Account, error)
	GetAccountByOAuthID(oauthID string) (*Account, error)

	UpdateAccount(a *Account) error
}

// TokenStorage owns refresh token records and their state machine.
type TokenStorage interface {
	CreateToken(t *RefreshToken) error

	GetTokenByHash(tokenHash string) (*RefreshToken, error)

	// RotateToken transitions the record for oldHash from ACTIVE to ROTATED
	// and inserts the replacement as one indivisible operation. With two
	// concurrent callers exactly one wins; the loser observes
	// ErrTokenNotActive. Absent or expired records yield ErrTokenNotFound
	// and ErrTokenExpired.
	RotateToken(oldHash string, replacement *RefreshToken, now time.Time) error

	// RevokeToken transitions a record to REVOKED. Idempotent: unknown or
	// already-revoked hashes are a no-op, not an error.
	RevokeToken(tokenHash string, now time.Time) error

	// RevokeAccountTokens revokes every ACTIVE record of one account,
	// all-or-nothing as observed by concurrent validate/rotate calls.
	RevokeAccountTokens(accountID string, now time.Time) error

	// RevokeTokenFamily revokes every ACTIVE record sharing a rotation
	// family, the hook for external theft-response policies.
	RevokeTokenFamily(familyID string, now time.Time) error
}

type AuthStorage interface {
	AccountStorage
	TokenStorage
}
