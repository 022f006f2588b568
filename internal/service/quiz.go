package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

var (
	ErrIncompleteForm  = errors.New("form is incomplete")
	ErrWrongScreen     = errors.New("action is not available on this screen")
	ErrStaleAnswer     = errors.New("answer does not match the current question")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("current question is not answered yet")
)

// AnswerResult describes the outcome of a single answer.
type AnswerResult struct {
	Correct bool
	Last    bool // the answered question was the last of the set
	Session *entities.Session
}

// QuizService is the screen controller. It owns every chat's session and
// implements all transitions between screens.
type QuizService struct {
	bank     TestBank
	sessions SessionStorage
	journal  AttemptJournal
	certs    CertificateGenerator
	logger   *zap.Logger

	pick       func(n int) int
	now        func() time.Time
	sessionTTL time.Duration
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithPicker replaces the uniform random test set picker.
func WithPicker(pick func(n int) int) Option {
	return func(s *QuizService) { s.pick = pick }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithSessionTTL sets how long an untouched session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *QuizService) { s.sessionTTL = ttl }
}

func NewQuizService(
	bank TestBank,
	sessions SessionStorage,
	journal AttemptJournal,
	certs CertificateGenerator,
	logger *zap.Logger,
	opts ...Option,
) *QuizService {
	if journal == nil {
		journal = NopJournal{}
	}

	s := &QuizService{
		bank:       bank,
		sessions:   sessions,
		journal:    journal,
		certs:      certs,
		logger:     logger,
		pick:       rand.Intn,
		now:        time.Now,
		sessionTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the chat's session, creating a default one on first contact.
func (s *QuizService) Session(chatID int64) *entities.Session {
	if sess, ok := s.sessions.Get(chatID); ok {
		return sess
	}

	sess, _ := s.update(chatID, func(*entities.Session) error { return nil })
	return sess
}

// Start opens a fresh session on the language screen, preferring the client's language.
func (s *QuizService) Start(chatID int64, languageCode string) *entities.Session {
	sess := entities.NewSession(chatID, entities.PreferredLanguage(languageCode))
	sess.UpdatedAt = s.now()
	s.sessions.Store(sess)
	return sess.Clone()
}

// Restart returns to the language screen and clears the session.
func (s *QuizService) Restart(chatID int64) *entities.Session {
	sess, _ := s.update(chatID, func(sess *entities.Session) error {
		*sess = *entities.NewSession(chatID, sess.Language)
		return nil
	})

	s.logger.Debug("session restarted", zap.Int64("chat_id", chatID))
	return sess
}

// SelectLanguage stores the language and opens an empty registration form.
func (s *QuizService) SelectLanguage(chatID int64, lang entities.Language) (*entities.Session, error) {
	if !lang.Valid() {
		return nil, entities.ErrUnsupportedLanguage
	}

	return s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenLanguage {
			return ErrWrongScreen
		}
		sess.Language = lang
		sess.User = entities.UserInfo{}
		sess.ActiveField = entities.FieldFirstName
		sess.Screen = entities.ScreenForm
		return nil
	})
}

// SetActiveField selects which form field receives the next text input.
func (s *QuizService) SetActiveField(chatID int64, field entities.Field) (*entities.Session, error) {
	return s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenForm {
			return ErrWrongScreen
		}
		sess.ActiveField = field
		return nil
	})
}

// FillField stores text into the active field and moves focus to the next
// empty one, if any.
func (s *QuizService) FillField(chatID int64, text string) (*entities.Session, error) {
	return s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenForm {
			return ErrWrongScreen
		}

		field := sess.ActiveField
		if field == "" {
			field = entities.FieldFirstName
		}
		sess.User.Set(field, strings.TrimSpace(text))

		// With every field filled, focus stays where the user typed so that
		// further text corrects that field.
		sess.ActiveField = field
		if next, ok := sess.User.NextEmpty(); ok {
			sess.ActiveField = next
		}
		return nil
	})
}

// SubmitForm validates the form and starts a test with a randomly chosen set.
func (s *QuizService) SubmitForm(ctx context.Context, chatID int64) (*entities.Session, error) {
	return s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenForm {
			return ErrWrongScreen
		}
		if !sess.User.Complete() {
			return ErrIncompleteForm
		}

		sets, err := s.bank.Sets(ctx, sess.Language)
		if err != nil {
			return fmt.Errorf("load test sets: %w", err)
		}
		if len(sets) == 0 {
			return fmt.Errorf("load test sets: no sets for %q", sess.Language)
		}

		idx := s.pick(len(sets))
		set := make(entities.TestSet, len(sets[idx]))
		copy(set, sets[idx])

		for _, f := range entities.FormFields {
			sess.User.Set(f, strings.TrimSpace(sess.User.Get(f)))
		}
		sess.TestSet = set
		sess.SetIndex = idx
		sess.CurrentQuestion = 0
		sess.Score = 0
		sess.Answered = false
		sess.AttemptID = ""
		sess.Screen = entities.ScreenTest

		s.logger.Info("test started",
			zap.Int64("chat_id", chatID),
			zap.String("language", string(sess.Language)),
			zap.Int("set", idx),
			zap.Int("questions", len(set)),
		)
		return nil
	})
}

// Answer checks choice against the current question and updates the score.
// questionIndex must match the current question so that repeated or late
// button presses cannot score twice.
func (s *QuizService) Answer(chatID int64, questionIndex, choice int) (*AnswerResult, error) {
	var res AnswerResult

	sess, err := s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenTest {
			return ErrWrongScreen
		}
		if questionIndex != sess.CurrentQuestion {
			return ErrStaleAnswer
		}
		if sess.Answered {
			return ErrAlreadyAnswered
		}

		q, ok := sess.Question()
		if !ok {
			return ErrStaleAnswer
		}
		if choice < 0 || choice >= len(q.Choices) {
			return ErrInvalidChoice
		}

		res.Correct = q.IsCorrect(choice)
		if res.Correct && sess.Score < sess.Total() {
			sess.Score++
		}
		sess.Answered = true
		res.Last = sess.CurrentQuestion == sess.Total()-1
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Session = sess
	return &res, nil
}

// Advance moves past an answered question: to the next one, or to the
// result screen after the last. Reaching the result records the attempt.
func (s *QuizService) Advance(ctx context.Context, chatID int64) (*entities.Session, error) {
	var attempt *entities.Attempt

	sess, err := s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenTest {
			return ErrWrongScreen
		}
		if !sess.Answered {
			return ErrNotAnswered
		}

		sess.Answered = false
		if sess.CurrentQuestion < sess.Total()-1 {
			sess.CurrentQuestion++
			return nil
		}

		sess.Screen = entities.ScreenResult
		attempt = entities.NewAttempt(sess)
		sess.AttemptID = attempt.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if attempt != nil {
		s.logger.Info("test finished",
			zap.Int64("chat_id", chatID),
			zap.Int("score", attempt.Score),
			zap.Int("total", attempt.Total),
		)
		if err := s.journal.Save(ctx, attempt); err != nil {
			s.logger.Error("failed to save attempt",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	return sess, nil
}

// GenerateCertificate renders the chat's certificate. The session passes
// through the loading screen and always ends on the result screen.
func (s *QuizService) GenerateCertificate(ctx context.Context, chatID int64) (*certificate.Document, error) {
	sess, err := s.update(chatID, func(sess *entities.Session) error {
		if sess.Screen != entities.ScreenResult {
			return ErrWrongScreen
		}
		sess.Screen = entities.ScreenLoading
		return nil
	})
	if err != nil {
		return nil, err
	}

	defer func() {
		_, _ = s.update(chatID, func(sess *entities.Session) error {
			if sess.Screen == entities.ScreenLoading {
				sess.Screen = entities.ScreenResult
			}
			return nil
		})
	}()

	doc, err := s.certs.Generate(ctx, certificate.Request{
		Language:  sess.Language,
		FirstName: sess.User.FirstName,
		LastName:  sess.User.LastName,
		Position:  sess.User.Position,
		Score:     sess.Score,
		Total:     sess.Total(),
	})
	if err != nil {
		s.logger.Error("PDF generation error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("generate certificate: %w", err)
	}

	if sess.AttemptID != "" {
		if err := s.journal.MarkCertificateIssued(ctx, sess.AttemptID, doc.FileName, s.now()); err != nil {
			s.logger.Error("failed to mark certificate issued",
				zap.Int64("chat_id", chatID),
				zap.String("attempt_id", sess.AttemptID),
				zap.Error(err),
			)
		}
	}

	return doc, nil
}

// ExpireIdle drops sessions untouched for longer than the session TTL.
func (s *QuizService) ExpireIdle() int {
	return s.sessions.DeleteIdle(s.now().Add(-s.sessionTTL))
}

// update applies fn to the chat's session atomically, creating a default
// session on first contact. The result is stored only if fn succeeds.
func (s *QuizService) update(chatID int64, fn func(sess *entities.Session) error) (*entities.Session, error) {
	return s.sessions.Update(chatID, func(sess *entities.Session) (*entities.Session, error) {
		if sess == nil {
			sess = entities.NewSession(chatID, entities.DefaultLanguage)
		}
		if err := fn(sess); err != nil {
			return nil, err
		}

		sess.UpdatedAt = s.now()
		return sess, nil
	})
}
