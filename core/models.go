package core

import (
	"strings"
	"time"
)

// Role is the coarse authorization level attached to an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Account is the canonical local identity record
//
// This is the "identity" - one row per federated login, keyed by OAuthID
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"` // not unique, may be empty when the provider grants no email scope
	Nickname  string    `json:"nickname"`
	OAuthID   string    `json:"-"` // "<provider>_<providerUserId>", never exposed raw
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Provider returns the provider prefix of the reconciliation key,
// e.g. "kakao" for "kakao_123456789".
func (a *Account) Provider() string {
	if a.OAuthID == "" {
		return "unknown"
	}
	prefix, _, found := strings.Cut(a.OAuthID, "_")
	if !found || prefix == "" {
		return "unknown"
	}
	return prefix
}

// Summary is the client-facing projection of an account, the only shape
// handed to HTTP responses.
func (a *Account) Summary() *AccountSummary {
	return &AccountSummary{
		ID:       a.ID,
		Email:    a.Email,
		Nickname: a.Nickname,
		Provider: a.Provider(),
	}
}

// AccountSummary is what /me and refresh responses carry.
type AccountSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname"`
	Provider string `json:"provider"`
}

// TokenState is the lifecycle state of a refresh token record.
//
// ACTIVE -> ROTATED on successful rotation, ACTIVE -> REVOKED on logout or
// account-wide revocation. Both transitions are terminal.
type TokenState string

const (
	TokenActive  TokenState = "ACTIVE"
	TokenRotated TokenState = "ROTATED"
	TokenRevoked TokenState = "REVOKED"
)

// RefreshToken is a single-use credential grant
//
// This is the "credential" - the raw token value lives only on the client,
// storage keeps its hash
type RefreshToken struct {
	ID        string     `json:"id"`
	AccountID string     `json:"accountId"`
	TokenHash string     `json:"-"` // Never expose in JSON (security!)
	FamilyID  string     `json:"familyId"`
	State     TokenState `json:"state"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Expired reports lazy expiry. Expired records are treated like REVOKED for
// validation but keep their stored state for audit.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Usable reports whether the record can still be exchanged or validated.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.State == TokenActive && !t.Expired(now)
}

// Principal identifies the caller of the current request. The zero value is
// the anonymous caller.
type Principal struct {
	Account *Account `json:"account"`
}

func (p Principal) Anonymous() bool {
	return p.Account == nil
}

// LoginResult is the outcome of completing a federated login.
type LoginResult struct {
	Account      *Account `json:"account"`
	Created      bool     `json:"created"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// RefreshResult is the outcome of a successful session refresh.
type RefreshResult struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"-"` // travels only as a cookie
	Account      *AccountSummary `json:"user"`
}
