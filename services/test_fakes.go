package services

import (
	"sync"
	"time"

	"github.com/seojunn/suho/core"
)

// FakeAuthStorage is a test-only fake implementing core.AuthStorage.
// It keeps records in maps under one mutex, which makes RotateToken and
// RevokeAccountTokens naturally atomic the way a real store's transactional
// primitives would be, and exposes error fields for behavior injection.
type FakeAuthStorage struct {
	mu       sync.Mutex
	accounts map[string]*core.Account      // key: account id
	tokens   map[string]*core.RefreshToken // key: token hash

	createAccountErr error
	getAccountErr    error
	updateAccountErr error
	createTokenErr   error
	getTokenErr      error
}

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		accounts: make(map[string]*core.Account),
		tokens:   make(map[string]*core.RefreshToken),
	}
}

// AccountStorage methods

func (f *FakeAuthStorage) CreateAccount(a *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createAccountErr != nil {
		return f.createAccountErr
	}

	for _, existing := range f.accounts {
		if existing.OAuthID == a.OAuthID {
			return core.ErrAccountExists
		}
	}

	clone := *a
	f.accounts[a.ID] = &clone
	return nil
}

func (f *FakeAuthStorage) GetAccountByID(id string) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}

	a, ok := f.accounts[id]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *FakeAuthStorage) GetAccountByOAuthID(oauthID string) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}

	for _, a := range f.accounts {
		if a.OAuthID == oauthID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (f *FakeAuthStorage) UpdateAccount(a *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateAccountErr != nil {
		return f.updateAccountErr
	}

	if _, ok := f.accounts[a.ID]; !ok {
		return core.ErrAccountNotFound
	}
	clone := *a
	f.accounts[a.ID] = &clone
	return nil
}

// DeleteAccount is not part of AccountStorage; tests use it to simulate an
// account removed by an external lifecycle collaborator after token issue.
func (f *FakeAuthStorage) DeleteAccount(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
}

// TokenStorage methods

func (f *FakeAuthStorage) CreateToken(t *core.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createTokenErr != nil {
		return f.createTokenErr
	}

	clone := *t
	f.tokens[t.TokenHash] = &clone
	return nil
}

func (f *FakeAuthStorage) GetTokenByHash(tokenHash string) (*core.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getTokenErr != nil {
		return nil, f.getTokenErr
	}

	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, core.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *FakeAuthStorage) RotateToken(oldHash string, replacement *core.RefreshToken, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, ok := f.tokens[oldHash]
	if !ok {
		return core.ErrTokenNotFound
	}
	if old.State != core.TokenActive {
		return core.ErrTokenNotActive
	}
	if old.Expired(now) {
		return core.ErrTokenExpired
	}

	old.State = core.TokenRotated
	old.UpdatedAt = now

	clone := *replacement
	f.tokens[replacement.TokenHash] = &clone
	return nil
}

func (f *FakeAuthStorage) RevokeToken(tokenHash string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[tokenHash]
	if !ok || t.State != core.TokenActive {
		return nil // idempotent
	}

	t.State = core.TokenRevoked
	t.UpdatedAt = now
	return nil
}

func (f *FakeAuthStorage) RevokeAccountTokens(accountID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tokens {
		if t.AccountID == accountID && t.State == core.TokenActive {
			t.State = core.TokenRevoked
			t.UpdatedAt = now
		}
	}
	return nil
}

func (f *FakeAuthStorage) RevokeTokenFamily(familyID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tokens {
		if t.FamilyID == familyID && t.State == core.TokenActive {
			t.State = core.TokenRevoked
			t.UpdatedAt = now
		}
	}
	return nil
}

// TokenByHash exposes the stored record for state assertions in tests.
func (f *FakeAuthStorage) TokenByHash(tokenHash string) *core.RefreshToken {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil
	}
	clone := *t
	return &clone
}

// ExpireToken backdates a record's expiry for lazy-expiry tests.
func (f *FakeAuthStorage) ExpireToken(tokenHash string, expiresAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.tokens[tokenHash]; ok {
		t.ExpiresAt = expiresAt
	}
}

var _ core.AuthStorage = (*FakeAuthStorage)(nil)
