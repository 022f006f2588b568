package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

var (
	ErrNoTestSets      = errors.New("no test sets for language")
	ErrInvalidQuestion = errors.New("invalid question")
)

// TestBank provides the pre-authored question sets for every language.
// Sets are loaded once and never modified.
type TestBank struct {
	sets map[entities.Language][]entities.TestSet
}

// NewTestBank loads question sets from a YAML file keyed by language code.
func NewTestBank(path string) (*TestBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test bank: %w", err)
	}

	return ParseTestBank(data)
}

// ParseTestBank decodes and validates a YAML test bank.
func ParseTestBank(data []byte) (*TestBank, error) {
	var raw map[string][]entities.TestSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test bank YAML: %w", err)
	}

	sets := make(map[entities.Language][]entities.TestSet, len(raw))
	for code, langSets := range raw {
		lang, err := entities.ParseLanguage(code)
		if err != nil {
			return nil, fmt.Errorf("test bank language %q: %w", code, err)
		}

		for i, set := range langSets {
			if len(set) == 0 {
				return nil, fmt.Errorf("%s set %d: empty: %w", lang, i, ErrInvalidQuestion)
			}
			for j, q := range set {
				if err := validateQuestion(q); err != nil {
					return nil, fmt.Errorf("%s set %d question %d: %w", lang, i, j, err)
				}
			}
		}

		sets[lang] = langSets
	}

	for _, lang := range entities.Languages {
		if len(sets[lang]) == 0 {
			return nil, fmt.Errorf("%s: %w", lang, ErrNoTestSets)
		}
	}

	return &TestBank{sets: sets}, nil
}

// Sets returns every question set of lang.
func (b *TestBank) Sets(_ context.Context, lang entities.Language) ([]entities.TestSet, error) {
	sets := b.sets[lang]
	if len(sets) == 0 {
		return nil, ErrNoTestSets
	}
	return sets, nil
}

func validateQuestion(q entities.Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt: %w", ErrInvalidQuestion)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("expected at least 2 choices, got %d: %w", len(q.Choices), ErrInvalidQuestion)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return fmt.Errorf("correct index %d out of range: %w", q.CorrectIndex, ErrInvalidQuestion)
	}
	return nil
}
