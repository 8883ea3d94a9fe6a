package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
)

type fakeQuestionRepo struct {
	pools map[entities.Difficulty][]entities.Question
	err   error
	calls int
}

func newFakeQuestionRepo(perTier int) *fakeQuestionRepo {
	f := &fakeQuestionRepo{pools: make(map[entities.Difficulty][]entities.Question)}
	for _, diff := range entities.Difficulties() {
		for i := 0; i < perTier; i++ {
			f.pools[diff] = append(f.pools[diff], entities.Question{
				ID:           fmt.Sprintf("%s-%d", diff, i),
				Text:         fmt.Sprintf("%s question %d", diff, i),
				Options:      []string{"opt-0", "opt-1", "opt-2", "opt-3"},
				CorrectIndex: 0,
				Category:     fmt.Sprintf("Category %d", i%3),
				Difficulty:   diff,
				Language:     entities.LanguageEnglish,
			})
		}
	}
	return f
}

func (f *fakeQuestionRepo) GetQuestions(_ context.Context, _ entities.Language, diff entities.Difficulty) ([]entities.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	pool := f.pools[diff]
	if len(pool) == 0 {
		return nil, repository.ErrQuestionsNotFound
	}
	out := make([]entities.Question, 0, len(pool))
	for _, q := range pool {
		out = append(out, q.Clone())
	}
	return out, nil
}

func newTestDealer(repo QuestionRepository, seed int64) *Dealer {
	return NewDealer(repo, WithRand(rand.New(rand.NewSource(seed))))
}

func TestDealLengthIsMinOfCountAndPool(t *testing.T) {
	repo := newFakeQuestionRepo(30)
	dealer := newTestDealer(repo, 1)

	tests := []struct {
		count int
		want  int
	}{
		{count: 1, want: 1},
		{count: 5, want: 5},
		{count: 30, want: 30},
		{count: 31, want: 30},
		{count: 100, want: 30},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("count=%d", tc.count), func(t *testing.T) {
			session, err := dealer.Deal(context.Background(), entities.LanguageEnglish, entities.DifficultyEasy, tc.count)
			if err != nil {
				t.Fatalf("deal: %v", err)
			}
			if len(session) != tc.want {
				t.Fatalf("len = %d, want %d", len(session), tc.want)
			}
		})
	}
}

func TestDealFiveOfThirtyDistinctAndValid(t *testing.T) {
	dealer := newTestDealer(newFakeQuestionRepo(30), 7)

	session, err := dealer.Deal(context.Background(), entities.LanguageEnglish, entities.DifficultyEasy, 5)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if len(session) != 5 {
		t.Fatalf("len = %d, want 5", len(session))
	}

	seen := make(map[string]bool)
	for _, q := range session {
		if seen[q.Text] {
			t.Fatalf("duplicate question %q in session", q.Text)
		}
		seen[q.Text] = true

		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			t.Fatalf("correct index %d out of range", q.CorrectIndex)
		}
		if q.Options[q.CorrectIndex] != "opt-0" {
			t.Fatalf("correct index points to %q, want opt-0", q.Options[q.CorrectIndex])
		}
	}
}

func TestDealCorrectPositionIsUnbiased(t *testing.T) {
	const trials = 1000
	repo := newFakeQuestionRepo(1)
	dealer := newTestDealer(repo, 42)

	var counts [4]int
	for i := 0; i < trials; i++ {
		session, err := dealer.Deal(context.Background(), entities.LanguageEnglish, entities.DifficultyMedium, 1)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		counts[session[0].CorrectIndex]++
	}

	// Expected 250 per position; 3.5 standard deviations is about 48.
	for pos, n := range counts {
		if n < 190 || n > 310 {
			t.Fatalf("position %d chosen %d/%d times, distribution %v", pos, n, trials, counts)
		}
	}
}

func TestDealDoesNotMutateRepository(t *testing.T) {
	repo := newFakeQuestionRepo(10)
	dealer := newTestDealer(repo, 3)

	for i := 0; i < 20; i++ {
		if _, err := dealer.Deal(context.Background(), entities.LanguageEnglish, entities.DifficultyHard, 10); err != nil {
			t.Fatalf("deal: %v", err)
		}
	}

	for _, q := range repo.pools[entities.DifficultyHard] {
		if q.CorrectIndex != 0 || q.Options[0] != "opt-0" {
			t.Fatalf("repository question %s was mutated: %+v", q.ID, q)
		}
	}
}

func TestDealErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid selector", func(t *testing.T) {
		repo := newFakeQuestionRepo(3)
		dealer := newTestDealer(repo, 1)
		if _, err := dealer.Deal(ctx, "de", entities.DifficultyEasy, 3); !errors.Is(err, entities.ErrInvalidSelector) {
			t.Fatalf("err = %v", err)
		}
		if repo.calls != 0 {
			t.Fatal("repository called for invalid selector")
		}
	})

	t.Run("invalid count", func(t *testing.T) {
		dealer := newTestDealer(newFakeQuestionRepo(3), 1)
		if _, err := dealer.Deal(ctx, entities.LanguageEnglish, entities.DifficultyEasy, 0); !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		dealer := newTestDealer(newFakeQuestionRepo(0), 1)
		if _, err := dealer.Deal(ctx, entities.LanguageEnglish, entities.DifficultyEasy, 3); !errors.Is(err, ErrNoQuestionsAvailable) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newFakeQuestionRepo(3)
		repo.err = errors.New("connection refused")
		dealer := newTestDealer(repo, 1)
		if _, err := dealer.Deal(ctx, entities.LanguageEnglish, entities.DifficultyEasy, 3); !errors.Is(err, repo.err) {
			t.Fatalf("err = %v", err)
		}
	})
}
