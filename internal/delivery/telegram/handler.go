package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             BotAPI
	logger          *zap.Logger
	quizService     QuizService
	answerDelay     time.Duration
	presentationURL string
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	answerDelay time.Duration,
	presentationURL string,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		quizService:     quizService,
		answerDelay:     answerDelay,
		presentationURL: presentationURL,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	queue := newChatQueue()
	defer queue.wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			chatID, ok := updateChatID(update)
			if !ok {
				h.logger.Debug("update without chat")
				continue
			}
			queue.push(chatID, update, func(next tgbotapi.Update) {
				h.handleUpdate(ctx, next)
			})
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			languageCode := ""
			if update.Message.From != nil {
				languageCode = update.Message.From.LanguageCode
			}
			_ = h.withErrorHandling(h.handleStart(languageCode))(ctx, chatID)

		case "help":
			_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Error("telegram request failed",
			zap.Error(err),
		)
	}
}

// pause waits for the answer feedback delay or until ctx is done.
func (h *Handler) pause(ctx context.Context) {
	if h.answerDelay <= 0 {
		return
	}

	t := time.NewTimer(h.answerDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
