package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	selected lipgloss.Style
	correct  lipgloss.Style
	status   lipgloss.Style
	alert    lipgloss.Style
	frame    lipgloss.Style
}

func newStyles(noColor bool) styles {
	s := styles{
		title:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		subtle:   lipgloss.NewStyle().Faint(true),
		selected: lipgloss.NewStyle().Bold(true),
		correct:  lipgloss.NewStyle().Bold(true),
		status:   lipgloss.NewStyle().Italic(true),
		alert:    lipgloss.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 2),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
	if noColor {
		return s
	}

	s.title = s.title.Foreground(lipgloss.Color("63"))
	s.selected = s.selected.Foreground(lipgloss.Color("212"))
	s.correct = s.correct.Foreground(lipgloss.Color("42"))
	s.alert = s.alert.BorderForeground(lipgloss.Color("196")).Foreground(lipgloss.Color("196"))
	s.frame = s.frame.BorderForeground(lipgloss.Color("63"))
	return s
}

// View renders the active screen. A pending alert replaces the screen until
// any key dismisses it.
func (m Model) View() string {
	if m.alert != "" {
		return m.styles.alert.Render(m.alert) + "\n" + m.styles.subtle.Render("↵")
	}

	t := i18n.For(m.sess.Language)

	var body string
	switch m.sess.Screen {
	case entities.ScreenLanguage:
		body = m.viewLanguage()
	case entities.ScreenForm:
		body = m.viewForm(t)
	case entities.ScreenTest:
		body = m.viewTest(t)
	case entities.ScreenResult:
		body = m.viewResult(t)
	case entities.ScreenLoading:
		body = m.spinner.View() + " " + t.LoadingText
	default:
		body = t.UnknownScreen
	}

	return m.styles.subtle.Render(t.SiteTitle) + "\n" + m.styles.frame.Render(body) + "\n"
}

func (m Model) viewLanguage() string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(i18n.LanguageTitle))
	sb.WriteString("\n")

	for i, lang := range entities.Languages {
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, lang.Flag(), lang.NativeName())
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.subtle.Render("1-3 · q"))
	return sb.String()
}

func (m Model) viewForm(t i18n.Texts) string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(t.FormTitle))
	sb.WriteString("\n")

	for i, f := range entities.FormFields {
		label := t.FieldLabel(f)
		if i == m.focus {
			label = m.styles.selected.Render(label)
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.styles.subtle.Render(fmt.Sprintf("tab · ↵ %s · esc %s", t.StartBtn, t.BackBtn)))
	return sb.String()
}

func (m Model) viewTest(t i18n.Texts) string {
	q, ok := m.sess.Question()
	if !ok {
		return m.styles.title.Render(t.TestTitle)
	}

	current := m.sess.CurrentQuestion + 1

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(t.TestTitle))
	sb.WriteString("\n")
	sb.WriteString(m.styles.subtle.Render(t.Progress(current, m.sess.Total())))
	sb.WriteString("\n\n")
	sb.WriteString(q.Prompt)
	sb.WriteString("\n\n")

	for i, choice := range q.Choices {
		line := fmt.Sprintf("%d. %s", i+1, choice)
		switch {
		case m.sess.Answered && q.IsCorrect(i):
			line = m.styles.correct.Render("✓ " + line)
		case i == m.cursor:
			line = m.styles.selected.Render("› " + line)
		default:
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.feedback != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.status.Render(m.feedback))
	}
	return sb.String()
}

func (m Model) viewResult(t i18n.Texts) string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(t.ResultTitle))
	sb.WriteString("\n")
	sb.WriteString(t.Score(m.sess.Score, m.sess.Total()))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.subtle.Render(fmt.Sprintf("d %s · r %s · q", t.DownloadBtn, t.RestartBtn)))

	if m.status != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.status.Render(m.status))
	}
	return sb.String()
}
