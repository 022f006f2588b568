package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
	"github.com/aliskhannn/certquiz-bot/internal/service"
)

// handleStart opens a fresh session on the language screen.
func (h *Handler) handleStart(languageCode string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess := h.quizService.Start(chatID, languageCode)
		h.sendScreen(chatID, sess)
		return nil
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess := h.quizService.Session(chatID)
		h.send(newPlainMessage(chatID, i18n.For(sess.Language).Help))
		return nil
	}
}

// handleText fills the active form field. Outside the form the current
// screen is shown again.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := h.quizService.FillField(chatID, text)
		if errors.Is(err, service.ErrWrongScreen) {
			sess = h.quizService.Session(chatID)
			if sess.Screen == entities.ScreenLoading {
				return nil
			}
		} else if err != nil {
			return err
		}

		h.sendScreen(chatID, sess)
		return nil
	}
}

// sendScreen sends the session's screen as a new message.
func (h *Handler) sendScreen(chatID int64, sess *entities.Session) {
	text, kb := renderScreen(sess, h.presentationURL)

	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	h.send(msg)
}

// editScreen replaces the content of an existing screen message.
func (h *Handler) editScreen(chatID int64, messageID int, sess *entities.Session) {
	text, kb := renderScreen(sess, h.presentationURL)

	edit := newEdit(chatID, messageID, text)
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
}
