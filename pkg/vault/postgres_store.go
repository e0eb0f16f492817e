package vault

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/botguard/pkg/pg"
)

// Migrations holds the schema of PostgresStore, applied with pg.Migrate
// under MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations passed to pg.Migrate.
const MigrationsDir = "migrations"

// PostgresStore keeps values in the vault_secrets table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.pool.QueryRow(ctx, `SELECT value FROM vault_secrets WHERE key = $1`, key).Scan(&v)
	if pg.IsNotFoundError(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Join(ErrStoreFailed, err)
	}
	return v, nil
}

func (s *PostgresStore) Put(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vault_secrets (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM vault_secrets WHERE key = $1`, key); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *PostgresStore) Swap(ctx context.Context, key, old, value string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE vault_secrets SET value = $3, updated_at = now()
		WHERE key = $1 AND value = $2`,
		key, old, value)
	if err != nil {
		return false, errors.Join(ErrStoreFailed, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT key FROM vault_secrets ORDER BY key`)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return keys, nil
}
