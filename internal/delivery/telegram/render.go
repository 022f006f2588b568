package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
)

const progressBarLength = 10

// renderScreen renders the active screen of a session as MarkdownV2 text
// with its keyboard. A nil keyboard means the screen has no buttons.
func renderScreen(s *entities.Session, presentationURL string) (string, *tgbotapi.InlineKeyboardMarkup) {
	t := i18n.For(s.Language)

	switch s.Screen {
	case entities.ScreenLanguage:
		kb := buildLanguageKeyboard()
		return bold(i18n.LanguageTitle), &kb

	case entities.ScreenForm:
		kb := buildFormKeyboard(t, s.ActiveField, presentationURL)
		return renderForm(t, s), &kb

	case entities.ScreenTest:
		q, ok := s.Question()
		if !ok {
			return bold(t.TestTitle), nil
		}
		kb := buildQuizAnswerKeyboard(t, q, s.CurrentQuestion)
		return renderQuestion(t, s, q), &kb

	case entities.ScreenResult:
		kb := buildResultKeyboard(t)
		return fmt.Sprintf("%s\n\n%s", bold(t.ResultTitle), md(t.Score(s.Score, s.Total()))), &kb

	case entities.ScreenLoading:
		return md("⏳ " + t.LoadingText), nil

	default:
		return md(t.UnknownScreen), nil
	}
}

func renderForm(t i18n.Texts, s *entities.Session) string {
	var sb strings.Builder

	sb.WriteString(bold(t.FormTitle))
	sb.WriteString("\n\n")

	for _, f := range entities.FormFields {
		value := s.User.Get(f)
		if value == "" {
			value = "—"
		}
		sb.WriteString(md(t.FieldLabel(f) + ": "))
		sb.WriteString(bold(value))
		sb.WriteString("\n")
	}

	if s.ActiveField != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(i18n.Format(t.EnterField, map[string]string{
			"field": t.FieldLabel(s.ActiveField),
		})))
	}

	return sb.String()
}

func renderQuestion(t i18n.Texts, s *entities.Session, q entities.Question) string {
	current := s.CurrentQuestion + 1

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s %s",
		bold(t.TestTitle),
		bold(q.Prompt),
		md(buildProgressBar(current, s.Total(), progressBarLength)),
		md(t.Progress(current, s.Total())),
	)
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
