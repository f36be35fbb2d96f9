package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/seojunn/suho"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

func (a *Adapter) CreateAccount(acc *suho.Account) error {
	ctx := context.Background()

	query := `INSERT INTO public.accounts (id, email, nickname, oauth_id, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.pool.Exec(ctx, query,
		acc.ID, acc.Email, acc.Nickname, acc.OAuthID, acc.Role, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return suho.ErrAccountExists
		}
		return err
	}

	return nil
}

func (a *Adapter) GetAccountByID(id string) (*suho.Account, error) {
	ctx := context.Background()
	query := `SELECT id, email, nickname, oauth_id, role, created_at, updated_at
	          FROM public.accounts WHERE id = $1`

	return a.scanAccount(a.pool.QueryRow(ctx, query, id))
}

func (a *Adapter) GetAccountByOAuthID(oauthID string) (*suho.Account, error) {
	ctx := context.Background()
	query := `SELECT id, email, nickname, oauth_id, role, created_at, updated_at
	          FROM public.accounts WHERE oauth_id = $1`

	return a.scanAccount(a.pool.QueryRow(ctx, query, oauthID))
}

func (a *Adapter) UpdateAccount(acc *suho.Account) error {
	ctx := context.Background()
	query := `UPDATE public.accounts SET email = $1, nickname = $2, role = $3, updated_at = $4
	          WHERE id = $5`

	tag, err := a.pool.Exec(ctx, query, acc.Email, acc.Nickname, acc.Role, acc.UpdatedAt, acc.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return suho.ErrAccountNotFound
	}

	return nil
}

func (a *Adapter) scanAccount(row pgx.Row) (*suho.Account, error) {
	acc := &suho.Account{}
	err := row.Scan(
		&acc.ID, &acc.Email, &acc.Nickname, &acc.OAuthID, &acc.Role, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, suho.ErrAccountNotFound
		}
		return nil, err
	}

	return acc, nil
}
