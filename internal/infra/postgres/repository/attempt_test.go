package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/infra/postgres"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls []execCall
	err   error
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.calls = append(db.calls, execCall{sql: sql, args: args})
	if db.err != nil {
		return pgconn.CommandTag{}, db.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

// TestSaveAttempt verifies every attempt column is bound in order.
func TestSaveAttempt(t *testing.T) {
	db := &fakeDB{}
	repo := NewAttemptRepository(db, nil)

	finished := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	err := repo.Save(context.Background(), &entities.Attempt{
		ID:         "6f1c2d8e-2b1a-4e0f-9a57-0c6a0d7e9b11",
		ChatID:     42,
		Language:   entities.LanguageKazakh,
		FirstName:  "Айгүл",
		LastName:   "Серікова",
		Position:   "Маман",
		SetIndex:   1,
		Score:      4,
		Total:      5,
		FinishedAt: finished,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.calls) != 1 {
		t.Fatalf("expected one statement, got %d", len(db.calls))
	}
	call := db.calls[0]
	if !strings.Contains(call.sql, "INSERT INTO quiz_attempts") {
		t.Fatalf("unexpected sql %q", call.sql)
	}
	if len(call.args) != 10 || call.args[2] != "kk" || call.args[7] != 4 || call.args[9] != finished {
		t.Fatalf("unexpected args %v", call.args)
	}
}

// TestSaveAttemptError verifies database errors are wrapped.
func TestSaveAttemptError(t *testing.T) {
	cause := errors.New("connection refused")
	repo := NewAttemptRepository(&fakeDB{err: cause}, nil)

	err := repo.Save(context.Background(), &entities.Attempt{ID: "x"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

// TestMigrate verifies the schema statements run in order.
func TestMigrate(t *testing.T) {
	db := &fakeDB{}
	if err := postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.calls) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(db.calls))
	}
	if !strings.Contains(db.calls[0].sql, "quiz_attempts") || !strings.Contains(db.calls[2].sql, "certificates") {
		t.Fatalf("unexpected migration order")
	}
}
