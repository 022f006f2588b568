// Package tui renders the quiz screens in a terminal with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
	"github.com/aliskhannn/certquiz-bot/internal/service"
)

// localChatID keys the single session of a terminal run.
const localChatID int64 = 1

type QuizService interface {
	Session(chatID int64) *entities.Session
	Start(chatID int64, languageCode string) *entities.Session
	Restart(chatID int64) *entities.Session
	SelectLanguage(chatID int64, lang entities.Language) (*entities.Session, error)
	SetActiveField(chatID int64, field entities.Field) (*entities.Session, error)
	FillField(chatID int64, text string) (*entities.Session, error)
	SubmitForm(ctx context.Context, chatID int64) (*entities.Session, error)
	Answer(chatID int64, questionIndex, choice int) (*service.AnswerResult, error)
	Advance(ctx context.Context, chatID int64) (*entities.Session, error)
	GenerateCertificate(ctx context.Context, chatID int64) (*certificate.Document, error)
}

type advanceMsg struct{}

type certificateMsg struct {
	path string
	err  error
}

// Options configures the terminal model.
type Options struct {
	LanguageCode string        // preferred language, e.g. from $LANG
	OutDir       string        // where certificates are written
	AnswerDelay  time.Duration // pause between an answer and the next question
	NoColor      bool
}

// Model is the Bubble Tea model of the quiz.
type Model struct {
	ctx         context.Context
	svc         QuizService
	sess        *entities.Session
	inputs      []textinput.Model
	focus       int
	cursor      int
	feedback    string
	status      string
	alert       string
	spinner     spinner.Model
	outDir      string
	answerDelay time.Duration
	styles      styles
}

// NewModel starts a fresh session and builds the model around it.
func NewModel(ctx context.Context, svc QuizService, opts Options) Model {
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		svc:         svc,
		sess:        svc.Start(localChatID, opts.LanguageCode),
		spinner:     sp,
		outDir:      outDir,
		answerDelay: opts.AnswerDelay,
		styles:      newStyles(opts.NoColor),
	}
	m.resetInputs()
	return m
}

// Init starts the cursor blink of the form inputs.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update dispatches key presses to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		return m.handleKey(msg)

	case advanceMsg:
		sess, err := m.svc.Advance(m.ctx, localChatID)
		if err != nil {
			sess = m.svc.Session(localChatID)
		}
		m.sess = sess
		m.cursor = 0
		m.feedback = ""
		return m, nil

	case certificateMsg:
		m.sess = m.svc.Session(localChatID)
		t := i18n.For(m.sess.Language)
		if msg.err != nil {
			m.alert = t.PDFFailure(msg.err)
			return m, nil
		}
		m.status = t.CertificateReady + ": " + msg.path
		return m, nil

	case spinner.TickMsg:
		if m.sess.Screen != entities.ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.sess.Screen == entities.ScreenForm {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.sess.Screen {
	case entities.ScreenLanguage:
		return m.languageKey(msg)
	case entities.ScreenForm:
		return m.formKey(msg)
	case entities.ScreenTest:
		return m.testKey(msg)
	case entities.ScreenResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m Model) languageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "esc" {
		return m, tea.Quit
	}

	idx := digit(key) - 1
	if idx < 0 || idx >= len(entities.Languages) {
		return m, nil
	}

	sess, err := m.svc.SelectLanguage(localChatID, entities.Languages[idx])
	if err != nil {
		return m, nil
	}
	m.sess = sess
	m.status = ""
	m.resetInputs()
	return m, m.inputs[0].Focus()
}

func (m Model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.restart()
		return m, nil
	case "tab", "down":
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "enter":
		return m.submit()
	}
	return m.updateInput(msg)
}

// submit copies the inputs into the session and starts the test.
func (m Model) submit() (tea.Model, tea.Cmd) {
	for i, f := range entities.FormFields {
		if _, err := m.svc.SetActiveField(localChatID, f); err != nil {
			return m, nil
		}
		if _, err := m.svc.FillField(localChatID, m.inputs[i].Value()); err != nil {
			return m, nil
		}
	}

	sess, err := m.svc.SubmitForm(m.ctx, localChatID)
	if errors.Is(err, service.ErrIncompleteForm) {
		m.alert = i18n.For(m.sess.Language).FillAllFields
		return m, nil
	}
	if err != nil {
		m.alert = err.Error()
		return m, nil
	}

	m.sess = sess
	m.cursor = 0
	return m, nil
}

func (m Model) testKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.restart()
		return m, nil
	}
	if m.sess.Answered {
		return m, nil
	}

	q, ok := m.sess.Question()
	if !ok {
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(q.Choices)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		return m.answer(m.cursor)
	}

	if d := digit(key); d >= 1 && d <= len(q.Choices) {
		return m.answer(d - 1)
	}
	return m, nil
}

func (m Model) answer(choice int) (tea.Model, tea.Cmd) {
	res, err := m.svc.Answer(localChatID, m.sess.CurrentQuestion, choice)
	if err != nil {
		return m, nil
	}

	m.sess = res.Session
	m.cursor = choice
	t := i18n.For(m.sess.Language)
	m.feedback = t.Incorrect
	if res.Correct {
		m.feedback = t.Correct
	}

	return m, tea.Tick(m.answerDelay, func(time.Time) tea.Msg { return advanceMsg{} })
}

func (m Model) resultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "esc":
		m.restart()
		return m, nil
	case "q":
		return m, tea.Quit
	case "d", "enter":
		loading := m.sess.Clone()
		loading.Screen = entities.ScreenLoading
		m.sess = loading
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.generate())
	}
	return m, nil
}

// generate renders the certificate and writes it into the output directory.
func (m Model) generate() tea.Cmd {
	ctx, svc, outDir := m.ctx, m.svc, m.outDir
	return func() tea.Msg {
		doc, err := svc.GenerateCertificate(ctx, localChatID)
		if err != nil {
			return certificateMsg{err: err}
		}

		path := filepath.Join(outDir, doc.FileName)
		if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
			return certificateMsg{err: fmt.Errorf("save certificate: %w", err)}
		}
		return certificateMsg{path: path}
	}
}

func (m *Model) restart() {
	m.sess = m.svc.Restart(localChatID)
	m.cursor = 0
	m.feedback = ""
	m.status = ""
	m.resetInputs()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) resetInputs() {
	t := i18n.For(m.sess.Language)

	m.inputs = make([]textinput.Model, len(entities.FormFields))
	for i, f := range entities.FormFields {
		in := textinput.New()
		in.Placeholder = t.FieldLabel(f)
		in.CharLimit = 64
		in.Prompt = "› "
		in.SetValue(m.sess.User.Get(f))
		m.inputs[i] = in
	}
	m.focus = 0
}

func digit(key string) int {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '0')
}
