package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/seojunn/suho"
)

func (a *Adapter) CreateToken(t *suho.RefreshToken) error {
	ctx := context.Background()

	query := `INSERT INTO public.refresh_tokens (token_hash, id, account_id, family_id, state, issued_at, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := a.pool.Exec(ctx, query,
		t.TokenHash, t.ID, t.AccountID, t.FamilyID, t.State, t.IssuedAt, t.ExpiresAt, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (a *Adapter) GetTokenByHash(tokenHash string) (*suho.RefreshToken, error) {
	ctx := context.Background()
	query := `SELECT token_hash, id, account_id, family_id, state, issued_at, expires_at, created_at, updated_at
	          FROM public.refresh_tokens WHERE token_hash = $1`

	t := &suho.RefreshToken{}
	err := a.pool.QueryRow(ctx, query, tokenHash).Scan(
		&t.TokenHash, &t.ID, &t.AccountID, &t.FamilyID, &t.State, &t.IssuedAt, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, suho.ErrTokenNotFound
		}
		return nil, err
	}

	return t, nil
}

// RotateToken retires the old record and inserts its replacement in one
// transaction. The conditional UPDATE is the single-winner gate: it only
// matches an ACTIVE, unexpired row, so a concurrent rotation of the same
// token leaves exactly one caller with RowsAffected = 1.
func (a *Adapter) RotateToken(oldHash string, replacement *suho.RefreshToken, now time.Time) error {
	ctx := context.Background()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE public.refresh_tokens SET state = 'ROTATED', updated_at = $2
		 WHERE token_hash = $1 AND state = 'ACTIVE' AND expires_at > $2`,
		oldHash, now,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return a.classifyRotateFailure(ctx, tx, oldHash, now)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO public.refresh_tokens (token_hash, id, account_id, family_id, state, issued_at, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		replacement.TokenHash, replacement.ID, replacement.AccountID, replacement.FamilyID,
		replacement.State, replacement.IssuedAt, replacement.ExpiresAt, replacement.CreatedAt, replacement.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// classifyRotateFailure distinguishes why the conditional UPDATE matched
// nothing: absent, already rotated/revoked (the replay signal) or expired.
func (a *Adapter) classifyRotateFailure(ctx context.Context, tx pgx.Tx, oldHash string, now time.Time) error {
	var row suho.RefreshToken
	err := tx.QueryRow(ctx,
		`SELECT state, expires_at FROM public.refresh_tokens WHERE token_hash = $1`,
		oldHash,
	).Scan(&row.State, &row.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return suho.ErrTokenNotFound
		}
		return err
	}

	if row.State != suho.TokenActive {
		return suho.ErrTokenNotActive
	}
	return suho.ErrTokenExpired
}

func (a *Adapter) RevokeToken(tokenHash string, now time.Time) error {
	ctx := context.Background()

	// Idempotent: zero matched rows is success, not an error.
	_, err := a.pool.Exec(ctx,
		`UPDATE public.refresh_tokens SET state = 'REVOKED', updated_at = $2
		 WHERE token_hash = $1 AND state = 'ACTIVE'`,
		tokenHash, now,
	)
	return err
}

// RevokeAccountTokens is a single UPDATE, so concurrent validate/rotate
// calls observe it fully applied or not at all.
func (a *Adapter) RevokeAccountTokens(accountID string, now time.Time) error {
	ctx := context.Background()

	_, err := a.pool.Exec(ctx,
		`UPDATE public.refresh_tokens SET state = 'REVOKED', updated_at = $2
		 WHERE account_id = $1 AND state = 'ACTIVE'`,
		accountID, now,
	)
	return err
}

func (a *Adapter) RevokeTokenFamily(familyID string, now time.Time) error {
	ctx := context.Background()

	_, err := a.pool.Exec(ctx,
		`UPDATE public.refresh_tokens SET state = 'REVOKED', updated_at = $2
		 WHERE family_id = $1 AND state = 'ACTIVE'`,
		familyID, now,
	)
	return err
}
