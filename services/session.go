package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seojunn/suho/core"
	"github.com/seojunn/suho/pkg/crypto"
)

// TokenManager drives the refresh token state machine over a TokenStorage.
// The manager itself is stateless; single-winner rotation and all-or-nothing
// revocation are the storage's atomic guarantees.
type TokenManager struct {
	config  core.TokenConfig
	storage core.TokenStorage
}

// RotationResult is the outcome of a successful single-use exchange.
type RotationResult struct {
	Token     string // new raw refresh token for the client
	AccountID string
	FamilyID  string
}

func NewTokenManager(config core.TokenConfig, storage core.TokenStorage) *TokenManager {
	return &TokenManager{config: config, storage: storage}
}

// Generate creates a fresh ACTIVE record and returns the raw token.
// Each generated token starts a new rotation family.
func (tm *TokenManager) Generate(accountID string) (string, error) {
	pair, err := crypto.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}

	record, err := tm.newRecord(accountID, uuid.NewString(), pair.Hash)
	if err != nil {
		return "", err
	}

	if err := tm.storage.CreateToken(record); err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}

	return pair.Token, nil
}

// Validate reports whether a raw token maps to an ACTIVE, unexpired record.
func (tm *TokenManager) Validate(raw string) bool {
	if raw == "" {
		return false
	}

	record, err := tm.storage.GetTokenByHash(crypto.HashToken(raw))
	if err != nil {
		return false
	}

	return record.Usable(time.Now())
}

// Rotate exchanges oldRaw for a fresh token in the same family. The
// transition is atomic in storage: with two concurrent callers exactly one
// rotation succeeds and the other observes ErrTokenNotActive, which is the
// replay-detected signal. Responding to theft (e.g. RevokeFamily) is an
// external policy decision.
func (tm *TokenManager) Rotate(oldRaw string) (*RotationResult, error) {
	if oldRaw == "" {
		return nil, core.ErrTokenNotFound
	}

	oldHash := crypto.HashToken(oldRaw)
	old, err := tm.storage.GetTokenByHash(oldHash)
	if err != nil {
		return nil, err
	}

	pair, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	replacement, err := tm.newRecord(old.AccountID, old.FamilyID, pair.Hash)
	if err != nil {
		return nil, err
	}

	// The winner check happens inside RotateToken, not on the record read
	// above; a racing caller fails here, never after.
	if err := tm.storage.RotateToken(oldHash, replacement, time.Now()); err != nil {
		return nil, err
	}

	return &RotationResult{
		Token:     pair.Token,
		AccountID: replacement.AccountID,
		FamilyID:  replacement.FamilyID,
	}, nil
}

// Revoke transitions a token to REVOKED. Revoking an unknown or
// already-revoked token is a no-op.
func (tm *TokenManager) Revoke(raw string) error {
	if raw == "" {
		return nil
	}
	return tm.storage.RevokeToken(crypto.HashToken(raw), time.Now())
}

// RevokeAllForAccount kills every ACTIVE token of one account, used when an
// account is deactivated by an external lifecycle collaborator.
func (tm *TokenManager) RevokeAllForAccount(accountID string) error {
	return tm.storage.RevokeAccountTokens(accountID, time.Now())
}

// RevokeFamily kills every ACTIVE token in a rotation family. The core
// never calls this itself; it is the hook for theft-response policies.
func (tm *TokenManager) RevokeFamily(familyID string) error {
	return tm.storage.RevokeTokenFamily(familyID, time.Now())
}

func (tm *TokenManager) newRecord(accountID, familyID, tokenHash string) (*core.RefreshToken, error) {
	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate token id: %w", err)
	}

	now := time.Now()
	return &core.RefreshToken{
		ID:        id,
		AccountID: accountID,
		TokenHash: tokenHash,
		FamilyID:  familyID,
		State:     core.TokenActive,
		IssuedAt:  now,
		ExpiresAt: now.Add(tm.config.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
