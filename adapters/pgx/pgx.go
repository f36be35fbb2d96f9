package pgx

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojunn/suho"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ suho.AuthStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

// Schema is the DDL this adapter expects. The unique index on oauth_id is
// what turns a reconciliation race into a Conflict instead of a duplicate,
// and token_hash as primary key is what makes "one ACTIVE record per token
// value" structural.
const Schema = `
CREATE TABLE IF NOT EXISTS public.accounts (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	nickname   TEXT NOT NULL,
	oauth_id   TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL DEFAULT 'USER',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS public.refresh_tokens (
	token_hash TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	account_id TEXT NOT NULL REFERENCES public.accounts (id),
	family_id  TEXT NOT NULL,
	state      TEXT NOT NULL DEFAULT 'ACTIVE',
	issued_at  TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS refresh_tokens_account_idx ON public.refresh_tokens (account_id) WHERE state = 'ACTIVE';
CREATE INDEX IF NOT EXISTS refresh_tokens_family_idx ON public.refresh_tokens (family_id) WHERE state = 'ACTIVE';
`

// EnsureSchema applies the adapter's DDL. Idempotent; intended for example
// apps and tests, real deployments own their migrations.
func (a *Adapter) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, Schema)
	return err
}
