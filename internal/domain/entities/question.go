package entities

// Question is a single multiple-choice question of a test set.
type Question struct {
	Prompt       string   `yaml:"q"`
	Choices      []string `yaml:"a"`
	CorrectIndex int      `yaml:"c"`
}

// IsCorrect reports whether choice is the correct option.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// TestSet is one pre-authored, language-specific list of questions.
type TestSet []Question
