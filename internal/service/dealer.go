package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrInvalidCount         = errors.New("question count must be at least 1")
)

// Dealer samples and orders questions for a play-through.
// It is safe for concurrent use.
type Dealer struct {
	repo QuestionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// DealerOption configures a Dealer.
type DealerOption func(*Dealer)

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) DealerOption {
	return func(d *Dealer) {
		d.rng = rng
	}
}

// NewDealer creates a new Dealer.
func NewDealer(repo QuestionRepository, opts ...DealerOption) *Dealer {
	d := &Dealer{
		repo: repo,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deal returns min(count, pool size) distinct questions in random order,
// each with its options shuffled and CorrectIndex rewritten to match.
// The repository's questions are never modified.
func (d *Dealer) Deal(ctx context.Context, lang entities.Language, diff entities.Difficulty, count int) ([]entities.Question, error) {
	if !lang.Valid() || !diff.Valid() {
		return nil, entities.ErrInvalidSelector
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}

	pool, err := d.repo.GetQuestions(ctx, lang, diff)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionsNotFound) {
			return nil, ErrNoQuestionsAvailable
		}
		return nil, fmt.Errorf("get questions: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	order := d.rng.Perm(len(pool))
	if count > len(order) {
		count = len(order)
	}

	session := make([]entities.Question, 0, count)
	for _, idx := range order[:count] {
		session = append(session, d.shuffleOptions(pool[idx]))
	}

	return session, nil
}

// shuffleOptions permutes the options of a copy of q and tracks the correct one.
// d.mu must be held.
func (d *Dealer) shuffleOptions(q entities.Question) entities.Question {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, len(q.Options))
	for i, opt := range q.Options {
		choices[i] = choice{text: opt, isCorrect: i == q.CorrectIndex}
	}

	d.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	out := q.Clone()
	for i, c := range choices {
		out.Options[i] = c.text
		if c.isCorrect {
			out.CorrectIndex = i
		}
	}

	return out
}
