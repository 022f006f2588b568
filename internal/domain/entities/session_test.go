package entities

import "testing"

// TestUserInfoComplete verifies blank fields keep the form incomplete.
func TestUserInfoComplete(t *testing.T) {
	tests := []struct {
		name string
		user UserInfo
		want bool
	}{
		{name: "all filled", user: UserInfo{FirstName: "Иван", LastName: "Петров", Position: "Инженер"}, want: true},
		{name: "empty", user: UserInfo{}, want: false},
		{name: "whitespace position", user: UserInfo{FirstName: "A", LastName: "B", Position: "   "}, want: false},
		{name: "missing last name", user: UserInfo{FirstName: "A", Position: "C"}, want: false},
	}

	for _, tt := range tests {
		if got := tt.user.Complete(); got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

// TestUserInfoNextEmpty verifies fields are offered in form order.
func TestUserInfoNextEmpty(t *testing.T) {
	var u UserInfo
	u.Set(FieldFirstName, "A")

	f, ok := u.NextEmpty()
	if !ok || f != FieldLastName {
		t.Fatalf("expected lastName, got %q (%v)", f, ok)
	}

	u.Set(FieldLastName, "B")
	u.Set(FieldPosition, "C")
	if _, ok := u.NextEmpty(); ok {
		t.Fatalf("expected no empty fields")
	}
	if u.Get(FieldPosition) != "C" {
		t.Fatalf("expected position to be stored, got %q", u.Get(FieldPosition))
	}
}

// TestPercentRounding verifies the percentage is rounded half up.
func TestPercentRounding(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{score: 0, total: 5, want: 0},
		{score: 5, total: 5, want: 100},
		{score: 1, total: 3, want: 33},
		{score: 2, total: 3, want: 67},
		{score: 1, total: 8, want: 13},
		{score: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		if got := Percent(tt.score, tt.total); got != tt.want {
			t.Fatalf("Percent(%d, %d): expected %d, got %d", tt.score, tt.total, tt.want, got)
		}
	}
}

// TestSessionCloneIsIndependent verifies a clone does not share the test set.
func TestSessionCloneIsIndependent(t *testing.T) {
	s := NewSession(1, LanguageKazakh)
	s.TestSet = TestSet{{Prompt: "q", Choices: []string{"a", "b"}, CorrectIndex: 1}}

	c := s.Clone()
	c.TestSet[0].Prompt = "changed"
	c.Score = 3

	if s.TestSet[0].Prompt != "q" || s.Score != 0 {
		t.Fatalf("expected original session to be untouched")
	}
}

// TestNewSessionDefaults verifies a fresh session starts on the language screen.
func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(7, Language("fr"))
	if s.Screen != ScreenLanguage {
		t.Fatalf("expected language screen, got %s", s.Screen)
	}
	if s.Language != DefaultLanguage {
		t.Fatalf("expected default language, got %s", s.Language)
	}
	if s.ActiveField != FieldFirstName {
		t.Fatalf("expected firstName focus, got %s", s.ActiveField)
	}
	if _, ok := s.Question(); ok {
		t.Fatalf("expected no current question")
	}
}

// TestParseField verifies only form field names are accepted.
func TestParseField(t *testing.T) {
	if f, ok := ParseField("position"); !ok || f != FieldPosition {
		t.Fatalf("expected position, got %q", f)
	}
	if _, ok := ParseField("email"); ok {
		t.Fatalf("expected email to be rejected")
	}
}
