package entities

import (
	"strings"
	"time"
)

// Screen identifies which view is active for a session.
type Screen string

const (
	ScreenLanguage Screen = "language"
	ScreenForm     Screen = "form"
	ScreenTest     Screen = "test"
	ScreenResult   Screen = "result"
	ScreenLoading  Screen = "loading"
)

// Field is a registration form field.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldPosition  Field = "position"
)

// FormFields lists form fields in input order.
var FormFields = []Field{FieldFirstName, FieldLastName, FieldPosition}

// ParseField returns the form field named s.
func ParseField(s string) (Field, bool) {
	for _, f := range FormFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// UserInfo holds what the user entered on the registration form.
type UserInfo struct {
	FirstName string
	LastName  string
	Position  string
}

// Get returns the value of field f.
func (u UserInfo) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return u.FirstName
	case FieldLastName:
		return u.LastName
	case FieldPosition:
		return u.Position
	}
	return ""
}

// Set stores value into field f.
func (u *UserInfo) Set(f Field, value string) {
	switch f {
	case FieldFirstName:
		u.FirstName = value
	case FieldLastName:
		u.LastName = value
	case FieldPosition:
		u.Position = value
	}
}

// Complete reports whether every field holds non-blank text.
func (u UserInfo) Complete() bool {
	for _, f := range FormFields {
		if strings.TrimSpace(u.Get(f)) == "" {
			return false
		}
	}
	return true
}

// NextEmpty returns the first blank field, if any.
func (u UserInfo) NextEmpty() (Field, bool) {
	for _, f := range FormFields {
		if strings.TrimSpace(u.Get(f)) == "" {
			return f, true
		}
	}
	return "", false
}

// Session is the mutable quiz state of one chat.
type Session struct {
	ChatID          int64
	Language        Language
	User            UserInfo
	ActiveField     Field   // form field receiving the next text input
	TestSet         TestSet // selected question set, empty outside a test
	SetIndex        int     // index of TestSet within the language's sets
	CurrentQuestion int     // zero-based index into TestSet
	Score           int
	Answered        bool // current question already answered, waiting to advance
	AttemptID       string
	Screen          Screen
	UpdatedAt       time.Time
}

// NewSession creates a session on the language screen.
func NewSession(chatID int64, lang Language) *Session {
	if !lang.Valid() {
		lang = DefaultLanguage
	}
	return &Session{
		ChatID:      chatID,
		Language:    lang,
		ActiveField: FieldFirstName,
		Screen:      ScreenLanguage,
		UpdatedAt:   time.Now(),
	}
}

// Total returns the number of questions in the selected set.
func (s *Session) Total() int {
	return len(s.TestSet)
}

// Question returns the current question.
func (s *Session) Question() (Question, bool) {
	if s.CurrentQuestion < 0 || s.CurrentQuestion >= len(s.TestSet) {
		return Question{}, false
	}
	return s.TestSet[s.CurrentQuestion], true
}

// Percent returns the score as a rounded percentage.
func (s *Session) Percent() int {
	return Percent(s.Score, s.Total())
}

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.TestSet != nil {
		c.TestSet = make(TestSet, len(s.TestSet))
		copy(c.TestSet, s.TestSet)
	}
	return &c
}

// Percent returns score/total as a percentage rounded half up.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (total * 2)
}
