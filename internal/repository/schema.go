package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS indicators (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('core', 'optional')),
		objective TEXT NOT NULL,
		max_compensation INTEGER NOT NULL CHECK (max_compensation >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS associates (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profession TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		patient_count INTEGER,
		active_patients INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS missions (
		id BIGSERIAL PRIMARY KEY,
		associate_id BIGINT NOT NULL,
		indicator_id BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		current_value TEXT,
		compensation INTEGER NOT NULL DEFAULT 0 CHECK (compensation >= 0),
		notes TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_missions_associate ON missions (associate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_missions_indicator ON missions (indicator_id)`,
}

// EnsureSchema creates the store tables when they are missing. Missions carry
// no foreign keys: deleting an associate leaves its missions in place.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
