package postgres

import (
	"context"
	"fmt"
)

// Migrate creates the journal tables if they do not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id                    UUID PRIMARY KEY,
		chat_id               BIGINT NOT NULL,
		language              TEXT NOT NULL,
		first_name            TEXT NOT NULL,
		last_name             TEXT NOT NULL,
		position              TEXT NOT NULL,
		set_index             INT NOT NULL,
		score                 INT NOT NULL CHECK (score >= 0),
		total                 INT NOT NULL CHECK (total >= score),
		finished_at           TIMESTAMPTZ NOT NULL,
		certificate_issued_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_chat_id_idx ON quiz_attempts (chat_id)`,
	`CREATE TABLE IF NOT EXISTS certificates (
		id         BIGSERIAL PRIMARY KEY,
		attempt_id UUID NOT NULL REFERENCES quiz_attempts (id) ON DELETE CASCADE,
		file_name  TEXT NOT NULL,
		issued_at  TIMESTAMPTZ NOT NULL
	)`,
}
