package entities

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the quiz languages.
type Language string

const (
	LanguageRussian Language = "ru"
	LanguageKazakh  Language = "kk"
	LanguageChinese Language = "zh"
)

// DefaultLanguage is used for new sessions when nothing better is known.
const DefaultLanguage = LanguageRussian

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists supported languages in the order they are offered.
var Languages = []Language{LanguageRussian, LanguageKazakh, LanguageChinese}

// ParseLanguage accepts a plain code ("kk") or a BCP 47 tag ("kk-KZ", "zh-Hans")
// and reduces it to a supported language.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	// POSIX locales carry a codeset or modifier: "kk_KZ.UTF-8".
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", ErrUnsupportedLanguage
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", ErrUnsupportedLanguage
	}

	base, _ := tag.Base()
	l := Language(base.String())
	if !l.Valid() {
		return "", ErrUnsupportedLanguage
	}

	return l, nil
}

// PreferredLanguage maps a client language code to a supported language,
// falling back to DefaultLanguage.
func PreferredLanguage(code string) Language {
	l, err := ParseLanguage(code)
	if err != nil {
		return DefaultLanguage
	}
	return l
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case LanguageRussian, LanguageKazakh, LanguageChinese:
		return true
	}
	return false
}

// NativeName returns the language name written in that language.
func (l Language) NativeName() string {
	switch l {
	case LanguageRussian:
		return "Русский"
	case LanguageKazakh:
		return "Қазақша"
	case LanguageChinese:
		return "中文"
	}
	return string(l)
}

// Flag returns the country flag shown next to the language.
func (l Language) Flag() string {
	switch l {
	case LanguageRussian:
		return "🇷🇺"
	case LanguageKazakh:
		return "🇰🇿"
	case LanguageChinese:
		return "🇨🇳"
	}
	return ""
}
