package service

import (
	"context"
	"time"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/storage"
)

// QuestionRepository is the corpus the dealer samples from.
type QuestionRepository interface {
	GetQuestions(ctx context.Context, lang entities.Language, diff entities.Difficulty) ([]entities.Question, error)
}

// GameStore keeps one game per player.
type GameStore interface {
	GetOrCreate(playerID string) *storage.GameEntry
	Get(playerID string) (*storage.GameEntry, bool)
	Delete(playerID string)
}

// IdleEvictor drops games that have not been touched since a cutoff.
type IdleEvictor interface {
	EvictIdle(cutoff time.Time) []string
}

// Explainer renders the post-answer explanation of a question.
type Explainer interface {
	Explanation(lang entities.Language, q entities.Question) string
}
