package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/certquiz-bot/internal/certificate"
	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

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
