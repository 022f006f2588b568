//go:build cucumber

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/storage"
)

// TestQuizScenarios runs the quiz flow feature scenarios.
func TestQuizScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "quiz.feature")
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a new chat$`, state.givenNewChat)
	ctx.Step(`^certificate assets are unavailable$`, state.givenAssetsUnavailable)
	ctx.Step(`^I choose language "([^"]+)"$`, state.whenChooseLanguage)
	ctx.Step(`^I fill the form with "([^"]*)", "([^"]*)", "([^"]*)"$`, state.whenFillForm)
	ctx.Step(`^I submit the form$`, state.whenSubmit)
	ctx.Step(`^I answer correctly$`, state.whenAnswerCorrectly)
	ctx.Step(`^I answer incorrectly$`, state.whenAnswerIncorrectly)
	ctx.Step(`^I answer every question correctly$`, state.whenAnswerAll)
	ctx.Step(`^I go back$`, state.whenGoBack)
	ctx.Step(`^I download the certificate$`, state.whenDownload)
	ctx.Step(`^I see the "([^"]+)" screen$`, state.thenScreen)
	ctx.Step(`^I see the "([^"]+)" screen with (\d+) questions$`, state.thenScreenWithQuestions)
	ctx.Step(`^my result is (\d+) of (\d+) \((\d+)%\)$`, state.thenResult)
	ctx.Step(`^I am asked to fill all fields$`, state.thenFillAllFields)
	ctx.Step(`^I receive "([^"]+)"$`, state.thenReceive)
	ctx.Step(`^I see a certificate error$`, state.thenCertificateError)
}

type quizScenarioState struct {
	svc     *QuizService
	gen     *fakeGenerator
	lastErr error
	doc     *certificate.Document
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	s.gen = &fakeGenerator{}
	s.svc = NewQuizService(
		newBank(),
		storage.NewSessionStorage(),
		&fakeJournal{},
		s.gen,
		zap.NewNop(),
		WithPicker(func(int) int { return 0 }),
		WithClock(time.Now),
	)
	s.lastErr = nil
	s.doc = nil
}

func (s *quizScenarioState) givenNewChat() error {
	s.svc.Start(chatID, "")
	return nil
}

func (s *quizScenarioState) givenAssetsUnavailable() error {
	s.gen.err = fmt.Errorf("%w: 404 Not Found", certificate.ErrFetch)
	return nil
}

func (s *quizScenarioState) whenChooseLanguage(code string) error {
	lang, err := entities.ParseLanguage(code)
	if err != nil {
		return err
	}
	_, err = s.svc.SelectLanguage(chatID, lang)
	return err
}

func (s *quizScenarioState) whenFillForm(first, last, position string) error {
	values := []string{first, last, position}
	for i, f := range entities.FormFields {
		if _, err := s.svc.SetActiveField(chatID, f); err != nil {
			return err
		}
		if _, err := s.svc.FillField(chatID, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) whenSubmit() error {
	_, s.lastErr = s.svc.SubmitForm(context.Background(), chatID)
	return nil
}

func (s *quizScenarioState) whenAnswerCorrectly() error {
	q, ok := s.svc.Session(chatID).Question()
	if !ok {
		return errors.New("no current question")
	}
	return s.answer(q.CorrectIndex)
}

func (s *quizScenarioState) whenAnswerIncorrectly() error {
	q, ok := s.svc.Session(chatID).Question()
	if !ok {
		return errors.New("no current question")
	}
	return s.answer((q.CorrectIndex + 1) % len(q.Choices))
}

func (s *quizScenarioState) whenAnswerAll() error {
	for s.svc.Session(chatID).Screen == entities.ScreenTest {
		if err := s.whenAnswerCorrectly(); err != nil {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) answer(choice int) error {
	sess := s.svc.Session(chatID)
	if _, err := s.svc.Answer(chatID, sess.CurrentQuestion, choice); err != nil {
		return err
	}
	_, err := s.svc.Advance(context.Background(), chatID)
	return err
}

func (s *quizScenarioState) whenGoBack() error {
	s.svc.Restart(chatID)
	return nil
}

func (s *quizScenarioState) whenDownload() error {
	s.doc, s.lastErr = s.svc.GenerateCertificate(context.Background(), chatID)
	return nil
}

func (s *quizScenarioState) thenScreen(screen string) error {
	if got := s.svc.Session(chatID).Screen; string(got) != screen {
		return fmt.Errorf("expected %s screen, got %s", screen, got)
	}
	return nil
}

func (s *quizScenarioState) thenScreenWithQuestions(screen string, n int) error {
	if err := s.thenScreen(screen); err != nil {
		return err
	}
	if got := s.svc.Session(chatID).Total(); got != n {
		return fmt.Errorf("expected %d questions, got %d", n, got)
	}
	return nil
}

func (s *quizScenarioState) thenResult(score, total, percent int) error {
	sess := s.svc.Session(chatID)
	if sess.Score != score || sess.Total() != total || sess.Percent() != percent {
		return fmt.Errorf("expected %d of %d (%d%%), got %d of %d (%d%%)",
			score, total, percent, sess.Score, sess.Total(), sess.Percent())
	}
	return nil
}

func (s *quizScenarioState) thenFillAllFields() error {
	if !errors.Is(s.lastErr, ErrIncompleteForm) {
		return fmt.Errorf("expected incomplete form error, got %v", s.lastErr)
	}
	return nil
}

func (s *quizScenarioState) thenReceive(fileName string) error {
	if s.lastErr != nil {
		return s.lastErr
	}
	if s.doc == nil || s.doc.FileName != fileName {
		return fmt.Errorf("expected %s, got %+v", fileName, s.doc)
	}
	return nil
}

func (s *quizScenarioState) thenCertificateError() error {
	if !errors.Is(s.lastErr, certificate.ErrFetch) {
		return fmt.Errorf("expected fetch error, got %v", s.lastErr)
	}
	return nil
}
