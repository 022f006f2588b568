// Package i18n holds the static UI strings for every quiz language.
package i18n

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

// Texts is the set of UI strings for one language.
// Placeholders are written as {name} and filled by Format.
type Texts struct {
	SiteTitle               string
	LanguageTitle           string
	FormTitle               string
	FirstNamePlaceholder    string
	LastNamePlaceholder     string
	PositionPlaceholder     string
	EnterField              string // {field}
	DownloadPresentationBtn string
	StartBtn                string
	BackBtn                 string
	FillAllFields           string
	TestTitle               string
	ProgressText            string // {current} {total}
	Correct                 string
	Incorrect               string
	ResultTitle             string
	ScoreText               string // {score} {total} {percent}
	DownloadBtn             string
	RestartBtn              string
	LoadingText             string
	CertificateReady        string
	PDFError                string // {error}
	PDFFullName             string // {lastName} {firstName}
	PDFPosition             string // {position}
	PDFScore                string // {score} {total}
	UnknownScreen           string
	Help                    string
}

// LanguageTitle is shown on the language screen before any language is chosen.
const LanguageTitle = "Выберите язык / Тілді таңдаңыз / 选择语言"

var translations = map[entities.Language]Texts{
	entities.LanguageRussian: {
		SiteTitle:               "Тестирование",
		LanguageTitle:           LanguageTitle,
		FormTitle:               "Регистрация",
		FirstNamePlaceholder:    "Имя",
		LastNamePlaceholder:     "Фамилия",
		PositionPlaceholder:     "Должность",
		EnterField:              "Введите: {field}",
		DownloadPresentationBtn: "Скачать презентацию",
		StartBtn:                "Начать тест",
		BackBtn:                 "← Назад",
		FillAllFields:           "Пожалуйста, заполните все поля",
		TestTitle:               "Тест",
		ProgressText:            "Вопрос {current} из {total}",
		Correct:                 "Верно ✅",
		Incorrect:               "Неверно ❌",
		ResultTitle:             "Результат",
		ScoreText:               "Ваш результат: {score} из {total} ({percent}%)",
		DownloadBtn:             "Скачать сертификат",
		RestartBtn:              "Пройти заново",
		LoadingText:             "Создаём сертификат...",
		CertificateReady:        "Ваш сертификат готов",
		PDFError:                "Ошибка при создании PDF: {error}",
		PDFFullName:             "{lastName} {firstName}",
		PDFPosition:             "Должность: {position}",
		PDFScore:                "Результат теста: {score} из {total}",
		UnknownScreen:           "Ошибка: неизвестный экран",
		Help:                    "/start — начать заново\n/help — помощь",
	},
	entities.LanguageKazakh: {
		SiteTitle:               "Тестілеу",
		LanguageTitle:           LanguageTitle,
		FormTitle:               "Тіркелу",
		FirstNamePlaceholder:    "Аты",
		LastNamePlaceholder:     "Тегі",
		PositionPlaceholder:     "Лауазымы",
		EnterField:              "Енгізіңіз: {field}",
		DownloadPresentationBtn: "Презентацияны жүктеу",
		StartBtn:                "Тестті бастау",
		BackBtn:                 "← Артқа",
		FillAllFields:           "Барлық өрістерді толтырыңыз",
		TestTitle:               "Тест",
		ProgressText:            "{total} сұрақтың {current}-сі",
		Correct:                 "Дұрыс ✅",
		Incorrect:               "Қате ❌",
		ResultTitle:             "Нәтиже",
		ScoreText:               "Сіздің нәтижеңіз: {total} ішінен {score} ({percent}%)",
		DownloadBtn:             "Сертификатты жүктеу",
		RestartBtn:              "Қайта өту",
		LoadingText:             "Сертификат жасалуда...",
		CertificateReady:        "Сертификатыңыз дайын",
		PDFError:                "PDF жасау кезінде қате: {error}",
		PDFFullName:             "{lastName} {firstName}",
		PDFPosition:             "Лауазымы: {position}",
		PDFScore:                "Тест нәтижесі: {total} ішінен {score}",
		UnknownScreen:           "Қате: белгісіз экран",
		Help:                    "/start — қайта бастау\n/help — көмек",
	},
	entities.LanguageChinese: {
		SiteTitle:               "测试",
		LanguageTitle:           LanguageTitle,
		FormTitle:               "注册",
		FirstNamePlaceholder:    "名",
		LastNamePlaceholder:     "姓",
		PositionPlaceholder:     "职位",
		EnterField:              "请输入：{field}",
		DownloadPresentationBtn: "下载演示文稿",
		StartBtn:                "开始测试",
		BackBtn:                 "← 返回",
		FillAllFields:           "请填写所有字段",
		TestTitle:               "测试",
		ProgressText:            "第 {current} 题，共 {total} 题",
		Correct:                 "正确 ✅",
		Incorrect:               "错误 ❌",
		ResultTitle:             "结果",
		ScoreText:               "您的成绩：{score} / {total}（{percent}%）",
		DownloadBtn:             "下载证书",
		RestartBtn:              "重新开始",
		LoadingText:             "正在生成证书...",
		CertificateReady:        "您的证书已生成",
		PDFError:                "生成 PDF 时出错：{error}",
		PDFFullName:             "{lastName}{firstName}",
		PDFPosition:             "职位：{position}",
		PDFScore:                "测试成绩：{score} / {total}",
		UnknownScreen:           "错误：未知页面",
		Help:                    "/start — 重新开始\n/help — 帮助",
	},
}

// For returns the texts of lang, falling back to the default language.
func For(lang entities.Language) Texts {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[entities.DefaultLanguage]
}

// FieldLabel returns the placeholder text of a form field.
func (t Texts) FieldLabel(f entities.Field) string {
	switch f {
	case entities.FieldFirstName:
		return t.FirstNamePlaceholder
	case entities.FieldLastName:
		return t.LastNamePlaceholder
	case entities.FieldPosition:
		return t.PositionPlaceholder
	}
	return string(f)
}

// Format substitutes {key} placeholders in template with values from vars.
// Unknown placeholders are left as is.
func Format(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// Progress renders the "question N of M" line.
func (t Texts) Progress(current, total int) string {
	return Format(t.ProgressText, map[string]string{
		"current": strconv.Itoa(current),
		"total":   strconv.Itoa(total),
	})
}

// Score renders the result line.
func (t Texts) Score(score, total int) string {
	return Format(t.ScoreText, map[string]string{
		"score":   strconv.Itoa(score),
		"total":   strconv.Itoa(total),
		"percent": strconv.Itoa(entities.Percent(score, total)),
	})
}

// Certificate texts.

func (t Texts) CertificateName(firstName, lastName string) string {
	return Format(t.PDFFullName, map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
	})
}

func (t Texts) CertificatePosition(position string) string {
	return Format(t.PDFPosition, map[string]string{"position": position})
}

func (t Texts) CertificateScore(score, total int) string {
	return Format(t.PDFScore, map[string]string{
		"score": strconv.Itoa(score),
		"total": strconv.Itoa(total),
	})
}

// PDFFailure renders the certificate failure alert.
func (t Texts) PDFFailure(err error) string {
	return Format(t.PDFError, map[string]string{"error": err.Error()})
}
