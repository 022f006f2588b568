package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
)

// buildLanguageKeyboard builds one button per supported language.
func buildLanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entities.Languages))
	for _, lang := range entities.Languages {
		label := lang.Flag() + " " + lang.NativeName()
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLanguageCallback(lang)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFormKeyboard builds field selectors, the presentation link, submit and back.
func buildFormKeyboard(t i18n.Texts, active entities.Field, presentationURL string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, f := range entities.FormFields {
		label := "✏️ " + t.FieldLabel(f)
		if f == active {
			label = "👉 " + t.FieldLabel(f)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildFormFieldCallback(f)),
		))
	}

	if presentationURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📎 "+t.DownloadPresentationBtn, presentationURL),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ "+t.StartBtn, buildFormSubmitCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.BackBtn, buildBackCallback()),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(t i18n.Texts, q entities.Question, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Choices {
		callbackData := buildQuizAnswerCallback(questionIndex, i)
		button := tgbotapi.NewInlineKeyboardButtonData(option, callbackData)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(t.BackBtn, buildBackCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the result screen.
func buildResultKeyboard(t i18n.Texts) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 "+t.DownloadBtn, buildCertificateCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 "+t.RestartBtn, buildBackCallback()),
		),
	)
}
