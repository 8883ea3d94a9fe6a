package entities

import (
	"errors"
	"time"
)

// ErrEmptyHistory is returned when results are requested before any answer.
var ErrEmptyHistory = errors.New("answer history is empty")

// AnswerRecord is one entry of a game's answer history.
type AnswerRecord struct {
	QuestionText string     `json:"question"`      // text of the answered question
	Category     string     `json:"category"`      // category of the answered question
	Correct      bool       `json:"correct"`       // whether the selected option was correct
	Difficulty   Difficulty `json:"difficulty"`    // difficulty of the session
	Selected     int        `json:"selected"`      // option index the player picked
	CorrectIndex int        `json:"correct_index"` // option index of the correct answer
	AnsweredAt   time.Time  `json:"answered_at"`   // wall-clock time of the submission
}
