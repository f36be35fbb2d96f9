package services

import (
	"fmt"

	"github.com/seojunn/suho/core"
	"github.com/seojunn/suho/pkg/crypto"
)

// AuthService orchestrates issuance, refresh, termination and principal
// resolution. Pure composition over the codec, token manager and reconciler;
// it holds no state of its own.
type AuthService struct {
	storage    core.AuthStorage
	codec      *crypto.AccessCodec
	tokens     *TokenManager
	reconciler *Reconciler
	cache      core.Cache
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

func NewAuthService(storage core.AuthStorage, codec *crypto.AccessCodec, tokens *TokenManager, reconciler *Reconciler, cache core.Cache) *AuthService {
	return &AuthService{
		storage:    storage,
		codec:      codec,
		tokens:     tokens,
		reconciler: reconciler,
		cache:      cache,
	}
}

// IssueSession mints a credential pair for an already-reconciled account.
func (s *AuthService) IssueSession(accountID, email, nickname string) (accessToken, refreshToken string, err error) {
	accessToken, err = s.codec.Sign(accountID, email, nickname)
	if err != nil {
		return "", "", fmt.Errorf("sign access credential: %w", err)
	}

	refreshToken, err = s.tokens.Generate(accountID)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// CompleteLogin is the federated-login boundary: validated provider claims
// in, reconciled account plus credential pair out. Normalization and
// conflict errors propagate typed for the caller to map to a failure
// redirect.
func (s *AuthService) CompleteLogin(provider core.Provider, raw map[string]any) (*core.LoginResult, error) {
	identity, err := core.Normalize(provider, raw)
	if err != nil {
		return nil, err
	}

	account, created, err := s.reconciler.FindOrCreate(identity)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.IssueSession(account.ID, account.Email, account.Nickname)
	if err != nil {
		return nil, err
	}

	return &core.LoginResult{
		Account:      account,
		Created:      created,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshSession exchanges a refresh credential for a new credential pair.
// Callers only ever see ErrRefreshDenied on failure: not-found, rotated,
// expired and account-gone must stay indistinguishable to the client so
// token state cannot be probed.
func (s *AuthService) RefreshSession(refreshToken string) (*core.RefreshResult, error) {
	result, err := s.refresh(refreshToken)
	if err != nil {
		return nil, core.ErrRefreshDenied
	}
	return result, nil
}

// refresh keeps the typed failure causes for internal use and tests.
func (s *AuthService) refresh(refreshToken string) (*core.RefreshResult, error) {
	if refreshToken == "" {
		return nil, core.ErrTokenNotFound
	}

	rotation, err := s.tokens.Rotate(refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.GetAccountByID(rotation.AccountID)
	if err != nil {
		return nil, fmt.Errorf("load account for refresh: %w", err)
	}

	accessToken, err := s.codec.Sign(account.ID, account.Email, account.Nickname)
	if err != nil {
		return nil, fmt.Errorf("sign access credential: %w", err)
	}

	return &core.RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: rotation.Token,
		Account:      account.Summary(),
	}, nil
}

// TerminateSession revokes a refresh credential. Always succeeds: revoking
// an invalid, unknown or already-revoked token is a no-op.
func (s *AuthService) TerminateSession(refreshToken string) error {
	return s.tokens.Revoke(refreshToken)
}

// Resolve derives the calling principal from an access credential. It never
// fails: a missing, malformed or expired credential, or an account deleted
// after issue, all resolve to the anonymous principal.
func (s *AuthService) Resolve(accessToken string) core.Principal {
	if accessToken == "" {
		return core.Principal{}
	}

	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		return core.Principal{}
	}

	if s.cache != nil {
		if account, err := s.cache.Get(claims.Subject); err == nil {
			return core.Principal{Account: account}
		}
	}

	account, err := s.storage.GetAccountByID(claims.Subject)
	if err != nil {
		return core.Principal{}
	}

	if s.cache != nil {
		_ = s.cache.Set(account.ID, account)
	}

	return core.Principal{Account: account}
}
