package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates the users/todos tables if they do not exist yet.
// Idempotent, run once at server startup.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			email         text NOT NULL UNIQUE,
			full_name     text NOT NULL DEFAULT '',
			password_hash text NOT NULL,
			is_active     boolean NOT NULL DEFAULT true,
			created_at    timestamptz NOT NULL DEFAULT NOW(),
			updated_at    timestamptz NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title       text NOT NULL,
			description text NOT NULL DEFAULT '',
			completed   boolean NOT NULL DEFAULT false,
			created_at  timestamptz NOT NULL DEFAULT NOW(),
			updated_at  timestamptz NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_owner_created
			ON todos (owner_id, created_at DESC, id DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
