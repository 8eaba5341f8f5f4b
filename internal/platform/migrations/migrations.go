// Package migrations owns the relational schema. Statements are
// idempotent so Apply can run on every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// The composite unique index on cart_items is what closes the
// check-then-act race between concurrent cart adds; the unique columns
// on items.name and users.email do the same for the create paths.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		quantity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		hashed_password TEXT NOT NULL,
		shipping_address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		user_id UUID NOT NULL REFERENCES users (id),
		item_id UUID NOT NULL REFERENCES items (id),
		quantity INTEGER NOT NULL,
		UNIQUE (user_id, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS cart_items_user_idx ON cart_items (user_id)`,
}

// Apply runs every schema statement in order against the database.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
