package service

import (
	"context"
	"time"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

type TestBank interface {
	Sets(ctx context.Context, lang entities.Language) ([]entities.TestSet, error)
}

type SessionStorage interface {
	Get(chatID int64) (*entities.Session, bool)
	Store(session *entities.Session)
	Update(chatID int64, fn func(sess *entities.Session) (*entities.Session, error)) (*entities.Session, error)
	DeleteIdle(before time.Time) int
}

// AttemptJournal records finished tests and issued certificates.
type AttemptJournal interface {
	Save(ctx context.Context, attempt *entities.Attempt) error
	MarkCertificateIssued(ctx context.Context, attemptID, fileName string, issuedAt time.Time) error
}

type CertificateGenerator interface {
	Generate(ctx context.Context, req certificate.Request) (*certificate.Document, error)
}

// NopJournal discards every record. Used when no database is configured.
type NopJournal struct{}

func (NopJournal) Save(context.Context, *entities.Attempt) error { return nil }

func (NopJournal) MarkCertificateIssued(context.Context, string, string, time.Time) error {
	return nil
}
