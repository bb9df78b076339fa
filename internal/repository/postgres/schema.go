package postgres

import "context"

// Schema creates the tables used by this package. It is safe to run on
// every start.
const Schema = `
CREATE TABLE IF NOT EXISTS trip_plans (
	session_id  TEXT PRIMARY KEY,
	trip_id     TEXT NOT NULL UNIQUE,
	destination TEXT NOT NULL,
	plan        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS trip_plans_updated_at_idx ON trip_plans (updated_at DESC);
`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, q Querier) error {
	_, err := q.ExecContext(ctx, Schema)
	return err
}
