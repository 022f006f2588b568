package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/infra/postgres"
)

var ErrAttemptNotFound = errors.New("quiz attempt not found")

// AttemptRepository journals finished tests and issued certificates.
type AttemptRepository struct {
	db postgres.DBTX
	tx *postgres.Transactor
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(db postgres.DBTX, tx *postgres.Transactor) *AttemptRepository {
	return &AttemptRepository{db: db, tx: tx}
}

// Save inserts a finished attempt.
func (r *AttemptRepository) Save(ctx context.Context, a *entities.Attempt) error {
	query := `
		INSERT INTO quiz_attempts (
			id, chat_id, language, first_name, last_name,
			position, set_index, score, total, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		a.ID,
		a.ChatID,
		string(a.Language),
		a.FirstName,
		a.LastName,
		a.Position,
		a.SetIndex,
		a.Score,
		a.Total,
		a.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}

	return nil
}

// MarkCertificateIssued stores the certificate and stamps the attempt in one transaction.
func (r *AttemptRepository) MarkCertificateIssued(ctx context.Context, attemptID, fileName string, issuedAt time.Time) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE quiz_attempts
			SET certificate_issued_at = $2
			WHERE id = $1
		`, attemptID, issuedAt)
		if err != nil {
			return fmt.Errorf("update quiz attempt: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrAttemptNotFound
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO certificates (attempt_id, file_name, issued_at)
			VALUES ($1, $2, $3)
		`, attemptID, fileName, issuedAt)
		if err != nil {
			return fmt.Errorf("insert certificate: %w", err)
		}

		return nil
	})
}
