package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
)

// QuestionRepository serves the trivia corpus from SQLite.
type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetQuestions returns the pool for one language and difficulty in load order.
func (r *QuestionRepository) GetQuestions(ctx context.Context, lang entities.Language, diff entities.Difficulty) ([]entities.Question, error) {
	if !lang.Valid() || !diff.Valid() {
		return nil, entities.ErrInvalidSelector
	}

	questions, err := r.query(ctx, `
		SELECT id, language, difficulty, category, text, options_json, correct_index
		FROM questions
		WHERE language = ? AND difficulty = ?
		ORDER BY position`,
		string(lang), string(diff),
	)
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
	return r.query(ctx, `
		SELECT id, language, difficulty, category, text, options_json, correct_index
		FROM questions
		ORDER BY language, position`,
	)
}

// Seed replaces the stored corpus with questions in one transaction.
func (r *QuestionRepository) Seed(ctx context.Context, questions []entities.Question) (int64, error) {
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("question %s: %w", q.ID, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return 0, fmt.Errorf("clear questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (id, language, difficulty, category, text, options_json, correct_index, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return 0, fmt.Errorf("encode options of %s: %w", q.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			q.ID, string(q.Language), string(q.Difficulty), q.Category, q.Text, string(options), q.CorrectIndex, i,
		); err != nil {
			return 0, fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	return int64(len(questions)), nil
}

func (r *QuestionRepository) query(ctx context.Context, query string, args ...any) ([]entities.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var (
			q                   entities.Question
			lang, diff, options string
		)
		if err := rows.Scan(&q.ID, &lang, &diff, &q.Category, &q.Text, &options, &q.CorrectIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of %s: %w", q.ID, err)
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
