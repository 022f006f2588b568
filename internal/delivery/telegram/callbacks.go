package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
	"github.com/aliskhannn/certquiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "", false)
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionLanguage:
		h.handleLanguageCallback(cb, data)
	case actionForm:
		h.handleFormCallback(ctx, cb, data)
	case actionQuiz:
		h.handleQuizCallback(ctx, cb, data)
	case actionResult:
		h.handleResultCallback(ctx, cb, data)
	case actionNav:
		h.handleNavCallback(cb, data)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "", false)
	}
}

func (h *Handler) handleLanguageCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	lang, err := entities.ParseLanguage(data.param(0))
	if err != nil {
		h.logger.Warn("invalid language in callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "", false)
		return
	}

	sess, err := h.quizService.SelectLanguage(chatID, lang)
	if err != nil {
		h.refreshStale(cb, err)
		return
	}

	h.answerCallback(cb, "", false)
	h.editScreen(chatID, cb.Message.MessageID, sess)
}

func (h *Handler) handleFormCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	switch data.param(0) {
	case formField:
		field, ok := entities.ParseField(data.param(1))
		if !ok {
			h.answerCallback(cb, "", false)
			return
		}

		sess, err := h.quizService.SetActiveField(chatID, field)
		if err != nil {
			h.refreshStale(cb, err)
			return
		}

		h.answerCallback(cb, "", false)
		h.editScreen(chatID, cb.Message.MessageID, sess)

	case formSubmit:
		sess, err := h.quizService.SubmitForm(ctx, chatID)
		if errors.Is(err, service.ErrIncompleteForm) {
			current := h.quizService.Session(chatID)
			h.answerCallback(cb, i18n.For(current.Language).FillAllFields, true)
			return
		}
		if err != nil {
			h.refreshStale(cb, err)
			return
		}

		h.answerCallback(cb, "", false)
		h.editScreen(chatID, cb.Message.MessageID, sess)

	default:
		h.answerCallback(cb, "", false)
	}
}

// handleQuizCallback scores an answer, shows feedback, waits the answer
// delay and then moves on to the next question or the result.
func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	questionIndex, err1 := strconv.Atoi(data.param(0))
	choice, err2 := strconv.Atoi(data.param(1))
	if err1 != nil || err2 != nil {
		h.logger.Warn("invalid quiz callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "", false)
		return
	}

	res, err := h.quizService.Answer(chatID, questionIndex, choice)
	if err != nil {
		// Late or repeated taps on an old question are ignored silently.
		if errors.Is(err, service.ErrStaleAnswer) || errors.Is(err, service.ErrAlreadyAnswered) {
			h.answerCallback(cb, "", false)
			return
		}
		h.refreshStale(cb, err)
		return
	}

	t := i18n.For(res.Session.Language)
	feedback := t.Incorrect
	if res.Correct {
		feedback = t.Correct
	}
	h.answerCallback(cb, feedback, false)

	h.pause(ctx)

	sess, err := h.quizService.Advance(ctx, chatID)
	if err != nil {
		h.logger.Error("failed to advance quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		sess = h.quizService.Session(chatID)
	}

	h.editScreen(chatID, cb.Message.MessageID, sess)
}

// handleResultCallback generates and sends the certificate. The result
// screen is restored whatever the outcome.
func (h *Handler) handleResultCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	if data.param(0) != resultCertificate {
		h.answerCallback(cb, "", false)
		return
	}

	sess := h.quizService.Session(chatID)
	if sess.Screen != entities.ScreenResult {
		h.refreshStale(cb, service.ErrWrongScreen)
		return
	}

	loading := sess.Clone()
	loading.Screen = entities.ScreenLoading
	h.editScreen(chatID, cb.Message.MessageID, loading)

	doc, err := h.quizService.GenerateCertificate(ctx, chatID)
	t := i18n.For(sess.Language)

	if err != nil {
		h.answerCallback(cb, t.PDFFailure(err), true)
	} else {
		h.answerCallback(cb, "", false)

		file := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: doc.FileName, Bytes: doc.Bytes})
		file.Caption = t.CertificateReady
		h.send(file)
	}

	h.editScreen(chatID, cb.Message.MessageID, h.quizService.Session(chatID))
}

func (h *Handler) handleNavCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	if data.param(0) != navBack {
		h.answerCallback(cb, "", false)
		return
	}

	sess := h.quizService.Restart(cb.Message.Chat.ID)
	h.answerCallback(cb, "", false)
	h.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, sess)
}

// refreshStale handles a tap on a button of a screen that is no longer
// active by redrawing the current screen.
func (h *Handler) refreshStale(cb *tgbotapi.CallbackQuery, err error) {
	chatID := cb.Message.Chat.ID

	if !errors.Is(err, service.ErrWrongScreen) {
		h.logger.Error("callback failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb, msgInternalError, true)
		return
	}

	h.answerCallback(cb, "", false)
	h.editScreen(chatID, cb.Message.MessageID, h.quizService.Session(chatID))
}

// answerCallback removes the user's "clock". With alert set the text is
// shown as a modal that must be dismissed.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	text = truncate(text, maxCallbackText)
	answer := tgbotapi.NewCallback(cb.ID, text)
	if alert {
		answer = tgbotapi.NewCallbackWithAlert(cb.ID, text)
	}
	h.request(answer)
}

// Telegram rejects callback answers longer than this.
const maxCallbackText = 200

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
