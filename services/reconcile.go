package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/seojunn/suho/core"
	"github.com/seojunn/suho/pkg/crypto"
)

// Reconciler collapses federated identities onto canonical accounts. Exactly
// one account ever exists per OAuthID; the storage uniqueness constraint is
// the arbiter when two first sign-ins race.
type Reconciler struct {
	storage core.AccountStorage
	cache   core.Cache // optional, invalidated on email refresh
}

func NewReconciler(storage core.AccountStorage, cache core.Cache) *Reconciler {
	return &Reconciler{storage: storage, cache: cache}
}

// FindOrCreate returns the canonical account for an identity, creating it on
// first sign-in. Calling it twice with the same identity yields the same
// account; the second call reports created=false.
//
// On repeat sign-ins a non-empty incoming email that differs from the stored
// one wins (last-write-wins, no history); an empty email never clears a
// stored address.
func (r *Reconciler) FindOrCreate(identity core.NormalizedIdentity) (*core.Account, bool, error) {
	account, err := r.storage.GetAccountByOAuthID(identity.OAuthID)
	if err == nil {
		if identity.Email != "" && identity.Email != account.Email {
			account.Email = identity.Email
			account.UpdatedAt = time.Now()
			if err := r.storage.UpdateAccount(account); err != nil {
				return nil, false, fmt.Errorf("refresh account email: %w", err)
			}
			if r.cache != nil {
				_ = r.cache.Delete(account.ID)
			}
		}
		return account, false, nil
	}
	if !errors.Is(err, core.ErrAccountNotFound) {
		return nil, false, fmt.Errorf("lookup account: %w", err)
	}

	account, err = r.JoinSocial(identity)
	if err == nil {
		return account, true, nil
	}

	// Lost the creation race: the winner's row is authoritative.
	if errors.Is(err, core.ErrAccountExists) {
		account, lookupErr := r.storage.GetAccountByOAuthID(identity.OAuthID)
		if lookupErr != nil {
			return nil, false, fmt.Errorf("lookup account after conflict: %w", lookupErr)
		}
		return account, false, nil
	}

	return nil, false, err
}

// JoinSocial registers a brand-new account for an identity. This is a
// create-or-conflict operation: if a concurrent registration already
// completed for the OAuthID it fails with ErrAccountExists rather than
// overwriting.
func (r *Reconciler) JoinSocial(identity core.NormalizedIdentity) (*core.Account, error) {
	existing, err := r.storage.GetAccountByOAuthID(identity.OAuthID)
	if err == nil && existing != nil {
		return nil, core.ErrAccountExists
	}
	if err != nil && !errors.Is(err, core.ErrAccountNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate account id: %w", err)
	}

	now := time.Now()
	account := &core.Account{
		ID:        id,
		Email:     identity.Email,
		Nickname:  identity.Nickname,
		OAuthID:   identity.OAuthID,
		Role:      core.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The pre-check above races with concurrent inserts; the storage
	// uniqueness constraint surfaces the loser as ErrAccountExists.
	if err := r.storage.CreateAccount(account); err != nil {
		return nil, err
	}

	return account, nil
}
