package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidQuestion is returned when a question record breaks its invariants.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice trivia question.
// It is treated as immutable: the dealer works on copies made with Clone.
type Question struct {
	ID           string     `json:"id"`         // stable identifier within the corpus
	Text         string     `json:"question"`   // question text shown to the player
	Options      []string   `json:"options"`    // answer options in display order
	CorrectIndex int        `json:"correct"`    // index of the correct option
	Category     string     `json:"category"`   // category label used in result breakdowns
	Difficulty   Difficulty `json:"difficulty"` // difficulty tier
	Language     Language   `json:"language"`   // language of the text and options
}

// Validate checks that the question is answerable.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q has %d options", ErrInvalidQuestion, q.Text, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.Text, q.CorrectIndex)
	}
	if !q.Language.Valid() || !q.Difficulty.Valid() {
		return fmt.Errorf("%w: %q has unknown language or difficulty", ErrInvalidQuestion, q.Text)
	}
	return nil
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}
