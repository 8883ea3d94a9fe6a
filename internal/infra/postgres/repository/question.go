package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/infra/postgres"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id            TEXT PRIMARY KEY,
    language      TEXT    NOT NULL,
    difficulty    TEXT    NOT NULL,
    category      TEXT    NOT NULL,
    text          TEXT    NOT NULL,
    options       TEXT[]  NOT NULL,
    correct_index INTEGER NOT NULL,
    position      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS questions_tier_idx ON questions (language, difficulty, position);
`

// Transactor runs fn inside a transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// QuestionRepository serves the trivia corpus from PostgreSQL.
type QuestionRepository struct {
	db postgres.DBTX
	tx Transactor
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db postgres.DBTX, tx Transactor) *QuestionRepository {
	return &QuestionRepository{db: db, tx: tx}
}

// EnsureSchema creates the questions table if it does not exist.
func (r *QuestionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure questions schema: %w", err)
	}
	return nil
}

// GetQuestions returns the pool for one language and difficulty in load order.
func (r *QuestionRepository) GetQuestions(ctx context.Context, lang entities.Language, diff entities.Difficulty) ([]entities.Question, error) {
	if !lang.Valid() || !diff.Valid() {
		return nil, entities.ErrInvalidSelector
	}

	query := `
		SELECT id, language, difficulty, category, text, options, correct_index
		FROM questions
		WHERE language = $1 AND difficulty = $2
		ORDER BY position
	`

	questions, err := r.query(ctx, query, string(lang), string(diff))
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, repository.ErrQuestionsNotFound
	}

	return questions, nil
}

// GetAll returns the whole corpus.
func (r *QuestionRepository) GetAll(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT id, language, difficulty, category, text, options, correct_index
		FROM questions
		ORDER BY language, position
	`
	return r.query(ctx, query)
}

// Seed replaces the stored corpus with questions in one transaction.
func (r *QuestionRepository) Seed(ctx context.Context, questions []entities.Question) (int64, error) {
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("question %s: %w", q.ID, err)
		}
	}

	var copied int64
	err := r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}

		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"questions"},
			[]string{"id", "language", "difficulty", "category", "text", "options", "correct_index", "position"},
			pgx.CopyFromSlice(len(questions), func(i int) ([]any, error) {
				q := questions[i]
				return []any{
					q.ID,
					string(q.Language),
					string(q.Difficulty),
					q.Category,
					q.Text,
					q.Options,
					q.CorrectIndex,
					i,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy questions: %w", err)
		}

		copied = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return copied, nil
}

func (r *QuestionRepository) query(ctx context.Context, query string, args ...any) ([]entities.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var (
			q          entities.Question
			lang, diff string
		)
		if err := rows.Scan(&q.ID, &lang, &diff, &q.Category, &q.Text, &q.Options, &q.CorrectIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Language = entities.Language(lang)
		q.Difficulty = entities.Difficulty(diff)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("stored question %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}
