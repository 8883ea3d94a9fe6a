package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

var (
	ErrQuestionsNotFound = errors.New("no questions for language and difficulty")
	ErrIncompleteCorpus  = errors.New("question corpus is missing a language or difficulty")
)

type tierKey struct {
	lang entities.Language
	diff entities.Difficulty
}

// QuestionRepository provides read-only access to the trivia corpus.
// This implementation keeps the whole corpus in memory.
type QuestionRepository struct {
	pools map[tierKey][]entities.Question
	total int
}

// NewQuestionRepository loads the corpus from a JSON file and checks that
// every language and difficulty has at least one question.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	questions, err := loadQuestionsJSON(path)
	if err != nil {
		return nil, err
	}

	if err := CheckCoverage(questions); err != nil {
		return nil, err
	}

	return NewQuestionRepositoryFrom(questions)
}

// NewQuestionRepositoryFrom builds a repository from already loaded questions.
func NewQuestionRepositoryFrom(questions []entities.Question) (*QuestionRepository, error) {
	r := &QuestionRepository{
		pools: make(map[tierKey][]entities.Question),
	}

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		key := tierKey{lang: q.Language, diff: q.Difficulty}
		r.pools[key] = append(r.pools[key], q.Clone())
		r.total++
	}

	return r, nil
}

// GetQuestions returns a copy of the pool for the given language and difficulty.
func (r *QuestionRepository) GetQuestions(_ context.Context, lang entities.Language, diff entities.Difficulty) ([]entities.Question, error) {
	if !lang.Valid() || !diff.Valid() {
		return nil, entities.ErrInvalidSelector
	}

	pool := r.pools[tierKey{lang: lang, diff: diff}]
	if len(pool) == 0 {
		return nil, ErrQuestionsNotFound
	}

	out := make([]entities.Question, 0, len(pool))
	for _, q := range pool {
		out = append(out, q.Clone())
	}

	return out, nil
}

// GetAll returns every question ordered by language, difficulty and load order.
func (r *QuestionRepository) GetAll(_ context.Context) ([]entities.Question, error) {
	out := make([]entities.Question, 0, r.total)
	for _, lang := range entities.Languages() {
		for _, diff := range entities.Difficulties() {
			for _, q := range r.pools[tierKey{lang: lang, diff: diff}] {
				out = append(out, q.Clone())
			}
		}
	}
	return out, nil
}

// Count returns the number of questions in the corpus.
func (r *QuestionRepository) Count() int {
	return r.total
}

// CheckCoverage reports ErrIncompleteCorpus if any language/difficulty tier is empty.
func CheckCoverage(questions []entities.Question) error {
	seen := make(map[tierKey]int)
	for _, q := range questions {
		seen[tierKey{lang: q.Language, diff: q.Difficulty}]++
	}

	var missing []string
	for _, lang := range entities.Languages() {
		for _, diff := range entities.Difficulties() {
			if seen[tierKey{lang: lang, diff: diff}] == 0 {
				missing = append(missing, string(lang)+"/"+string(diff))
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %v", ErrIncompleteCorpus, missing)
	}

	return nil
}

// corpusFile mirrors the on-disk layout: questions[language][difficulty][].
type corpusFile struct {
	Questions map[string]map[string][]struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Correct  int      `json:"correct"`
		Category string   `json:"category"`
	} `json:"questions"`
}

func loadQuestionsJSON(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper corpusFile
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	var questions []entities.Question
	for rawLang, tiers := range wrapper.Questions {
		lang, err := entities.ParseLanguage(rawLang)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", rawLang, err)
		}

		for rawDiff, items := range tiers {
			diff, err := entities.ParseDifficulty(rawDiff)
			if err != nil {
				return nil, fmt.Errorf("difficulty %q: %w", rawDiff, err)
			}

			for i, item := range items {
				q := entities.Question{
					ID:           fmt.Sprintf("%s-%s-%d", lang, diff, i+1),
					Text:         item.Question,
					Options:      item.Options,
					CorrectIndex: item.Correct,
					Category:     item.Category,
					Difficulty:   diff,
					Language:     lang,
				}
				if err := q.Validate(); err != nil {
					return nil, fmt.Errorf("question %s: %w", q.ID, err)
				}
				questions = append(questions, q)
			}
		}
	}

	sortQuestions(questions)

	return questions, nil
}

// sortQuestions orders questions deterministically since JSON maps are unordered.
func sortQuestions(questions []entities.Question) {
	rank := func(q entities.Question) (int, int) {
		li, di := 0, 0
		for i, l := range entities.Languages() {
			if l == q.Language {
				li = i
			}
		}
		for i, d := range entities.Difficulties() {
			if d == q.Difficulty {
				di = i
			}
		}
		return li, di
	}

	sort.SliceStable(questions, func(i, j int) bool {
		li, di := rank(questions[i])
		lj, dj := rank(questions[j])
		if li != lj {
			return li < lj
		}
		return di < dj
	})
}
