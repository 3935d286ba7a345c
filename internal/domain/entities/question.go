// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// AnswersPerQuestion is the fixed number of answer options a question carries.
const AnswersPerQuestion = 4

var (
	ErrInvalidAnswerCount  = errors.New("question must have exactly 4 answers")
	ErrDuplicateAnswers    = errors.New("question answers must be distinct")
	ErrCorrectAnswerAbsent = errors.New("correct answer is not among the answers")
	ErrUnknownDifficulty   = errors.New("unknown difficulty")
)

// Difficulty classifies how hard a question is. The four bands map onto
// the escalating sections of the prize ladder.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyMediumHard Difficulty = "medium-hard"
	DifficultyVeryHard   Difficulty = "very-difficult"
	DifficultyExpert     Difficulty = "expert"
)

// Difficulties lists all difficulty bands from easiest to hardest.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMediumHard,
	DifficultyVeryHard,
	DifficultyExpert,
}

// ParseDifficulty converts a stored string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.TrimSpace(strings.ToLower(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Question is a single multiple-choice quiz question. Questions are treated
// as immutable: the engine and the bank only ever hand out copies.
type Question struct {
	Text          string     `json:"question"`      // question text, also the identity for deduplication
	Answers       []string   `json:"answers"`       // exactly 4 distinct answer options
	CorrectAnswer string     `json:"correctAnswer"` // must be one of Answers
	Difficulty    Difficulty `json:"difficulty"`    // difficulty band
}

// Validate reports whether the question satisfies the data model invariants:
// exactly four distinct answers, the correct answer among them, and a known
// difficulty band.
func (q Question) Validate() error {
	if len(q.Answers) != AnswersPerQuestion {
		return fmt.Errorf("%w: got %d", ErrInvalidAnswerCount, len(q.Answers))
	}

	seen := make(map[string]struct{}, len(q.Answers))
	found := false
	for _, a := range q.Answers {
		if _, ok := seen[a]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateAnswers, a)
		}
		seen[a] = struct{}{}
		if a == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return ErrCorrectAnswerAbsent
	}

	if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
		return err
	}

	return nil
}

// IncorrectAnswers returns the answers other than the correct one.
func (q Question) IncorrectAnswers() []string {
	out := make([]string, 0, len(q.Answers)-1)
	for _, a := range q.Answers {
		if a != q.CorrectAnswer {
			out = append(out, a)
		}
	}
	return out
}
