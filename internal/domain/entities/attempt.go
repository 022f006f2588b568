package entities

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is a finished test recorded in the journal.
type Attempt struct {
	ID         string    // uuid
	ChatID     int64     // chat that took the test
	Language   Language  // test language
	FirstName  string    // as entered on the form
	LastName   string    // as entered on the form
	Position   string    // as entered on the form
	SetIndex   int       // which pre-authored set was drawn
	Score      int       // correct answers
	Total      int       // questions in the set
	FinishedAt time.Time // when the result screen was reached
}

// NewAttempt builds a journal entry from a session that reached the result screen.
func NewAttempt(s *Session) *Attempt {
	return &Attempt{
		ID:         uuid.NewString(),
		ChatID:     s.ChatID,
		Language:   s.Language,
		FirstName:  s.User.FirstName,
		LastName:   s.User.LastName,
		Position:   s.User.Position,
		SetIndex:   s.SetIndex,
		Score:      s.Score,
		Total:      s.Total(),
		FinishedAt: time.Now(),
	}
}
