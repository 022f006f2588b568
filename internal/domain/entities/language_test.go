package entities

import (
	"errors"
	"testing"
)

// TestParseLanguage verifies codes and tags are reduced to supported languages.
func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "ru", want: LanguageRussian},
		{in: "kk-KZ", want: LanguageKazakh},
		{in: "zh-Hans", want: LanguageChinese},
		{in: "ZH", want: LanguageChinese},
		{in: " kk ", want: LanguageKazakh},
		{in: "ru-RU.UTF-8", want: LanguageRussian},
		{in: "en", wantErr: true},
		{in: "", wantErr: true},
		{in: "not a tag", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedLanguage) {
				t.Fatalf("ParseLanguage(%q): expected ErrUnsupportedLanguage, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLanguage(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLanguage(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

// TestPreferredLanguageFallback verifies unknown codes fall back to the default.
func TestPreferredLanguageFallback(t *testing.T) {
	if got := PreferredLanguage("de-DE"); got != DefaultLanguage {
		t.Fatalf("expected %s, got %s", DefaultLanguage, got)
	}
	if got := PreferredLanguage("zh-CN"); got != LanguageChinese {
		t.Fatalf("expected zh, got %s", got)
	}
}

// TestLanguagesHaveNames verifies every offered language can be labelled.
func TestLanguagesHaveNames(t *testing.T) {
	for _, l := range Languages {
		if !l.Valid() {
			t.Fatalf("expected %s to be valid", l)
		}
		if l.NativeName() == string(l) || l.Flag() == "" {
			t.Fatalf("expected native name and flag for %s", l)
		}
	}
	if Language("en").Valid() {
		t.Fatalf("expected en to be invalid")
	}
}
