package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionLanguage = "lang"
	actionForm     = "form"
	actionQuiz     = "quiz"
	actionResult   = "result"
	actionNav      = "nav"
)

// Form sub-actions.
const (
	formField  = "field"
	formSubmit = "submit"
)

// Result sub-actions.
const (
	resultCertificate = "cert"
)

// Navigation sub-actions.
const (
	navBack = "back"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildLanguageCallback(lang entities.Language) string {
	return callbackData{
		Action: actionLanguage,
		Params: []string{string(lang)},
	}.encode()
}

func buildFormFieldCallback(field entities.Field) string {
	return callbackData{
		Action: actionForm,
		Params: []string{formField, string(field)},
	}.encode()
}

func buildFormSubmitCallback() string {
	return callbackData{
		Action: actionForm,
		Params: []string{formSubmit},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(questionIndex, answerIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			strconv.Itoa(questionIndex),
			strconv.Itoa(answerIndex),
		},
	}.encode()
}

func buildCertificateCallback() string {
	return callbackData{
		Action: actionResult,
		Params: []string{resultCertificate},
	}.encode()
}

func buildBackCallback() string {
	return callbackData{
		Action: actionNav,
		Params: []string{navBack},
	}.encode()
}
