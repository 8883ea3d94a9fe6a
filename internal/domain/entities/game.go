package entities

import (
	"errors"
	"time"
)

var (
	ErrOutOfRangeAnswer       = errors.New("answer index out of range")
	ErrInvalidStateTransition = errors.New("invalid game state transition")
)

// GameState is the top-level state of a game.
type GameState string

const (
	GameNotStarted GameState = "not_started"
	GameInProgress GameState = "in_progress"
	GameFinished   GameState = "finished"
)

// Game tracks one player's progress through a dealt session.
// A Game is owned by its caller and is not safe for concurrent use.
type Game struct {
	state    GameState
	session  []Question
	index    int
	answered bool
	selected int

	correct    int
	wrong      int
	streak     int
	bestStreak int
	history    []AnswerRecord

	startedAt time.Time
	now       func() time.Time
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithClock overrides the clock used for answer timestamps.
func WithClock(now func() time.Time) GameOption {
	return func(g *Game) {
		g.now = now
	}
}

// NewGame creates a game in the NotStarted state.
func NewGame(opts ...GameOption) *Game {
	g := &Game{
		state:    GameNotStarted,
		selected: -1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start begins a new play-through of session.
// It is valid from NotStarted and Finished. The best streak survives a
// Start and is cleared only by Reset.
func (g *Game) Start(session []Question) error {
	if g.state == GameInProgress {
		return ErrInvalidStateTransition
	}

	g.session = append([]Question(nil), session...)
	g.state = GameInProgress
	g.index = 0
	g.answered = false
	g.selected = -1
	g.correct = 0
	g.wrong = 0
	g.streak = 0
	g.history = nil
	g.startedAt = g.now()

	return nil
}

// State returns the current top-level state.
func (g *Game) State() GameState {
	g.settle()
	return g.state
}

// CurrentQuestion returns the question at the current index.
// The second result is false once the session is exhausted.
func (g *Game) CurrentQuestion() (Question, bool) {
	g.settle()
	if g.state != GameInProgress || g.index >= len(g.session) {
		return Question{}, false
	}
	return g.session[g.index], true
}

// SubmitAnswer records the player's choice for the current question.
func (g *Game) SubmitAnswer(optionIndex int) (AnswerRecord, error) {
	g.settle()
	if g.state != GameInProgress || g.answered {
		return AnswerRecord{}, ErrInvalidStateTransition
	}

	q := g.session[g.index]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return AnswerRecord{}, ErrOutOfRangeAnswer
	}

	isCorrect := optionIndex == q.CorrectIndex
	if isCorrect {
		g.correct++
		g.streak++
		if g.streak > g.bestStreak {
			g.bestStreak = g.streak
		}
	} else {
		g.wrong++
		g.streak = 0
	}

	rec := AnswerRecord{
		QuestionText: q.Text,
		Category:     q.Category,
		Correct:      isCorrect,
		Difficulty:   q.Difficulty,
		Selected:     optionIndex,
		CorrectIndex: q.CorrectIndex,
		AnsweredAt:   g.now(),
	}
	g.history = append(g.history, rec)
	g.answered = true
	g.selected = optionIndex

	return rec, nil
}

// Advance moves past an answered question and finishes the game after the last one.
func (g *Game) Advance() error {
	g.settle()
	if g.state != GameInProgress || !g.answered {
		return ErrInvalidStateTransition
	}

	g.index++
	g.answered = false
	g.selected = -1

	if g.index >= len(g.session) {
		g.state = GameFinished
	}

	return nil
}

// Reset returns the game to NotStarted and clears all counters and history.
func (g *Game) Reset() {
	g.state = GameNotStarted
	g.session = nil
	g.index = 0
	g.answered = false
	g.selected = -1
	g.correct = 0
	g.wrong = 0
	g.streak = 0
	g.bestStreak = 0
	g.history = nil
	g.startedAt = time.Time{}
}

// settle finishes an in-progress game whose session has no questions left.
func (g *Game) settle() {
	if g.state == GameInProgress && g.index >= len(g.session) {
		g.state = GameFinished
	}
}

// Answered reports whether the current question already has an answer.
func (g *Game) Answered() bool { return g.answered }

// Selected returns the option picked for the current question, if any.
func (g *Game) Selected() (int, bool) { return g.selected, g.answered }

// Index returns the zero-based position of the current question.
func (g *Game) Index() int { return g.index }

// Total returns the number of questions in the dealt session.
func (g *Game) Total() int { return len(g.session) }

func (g *Game) CorrectAnswers() int { return g.correct }

func (g *Game) WrongAnswers() int { return g.wrong }

func (g *Game) Streak() int { return g.streak }

func (g *Game) BestStreak() int { return g.bestStreak }

// Accuracy returns the percentage of answered questions that were correct.
func (g *Game) Accuracy() float64 {
	answered := g.correct + g.wrong
	if answered == 0 {
		return 0
	}
	return float64(g.correct) / float64(answered) * 100
}

// StartedAt returns the time the current session was started.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// History returns a copy of the answer history.
func (g *Game) History() []AnswerRecord {
	return append([]AnswerRecord(nil), g.history...)
}
