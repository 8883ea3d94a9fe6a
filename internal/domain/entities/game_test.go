package entities

import (
	"errors"
	"testing"
	"time"
)

func testSession(n int) []Question {
	session := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		session = append(session, Question{
			ID:           string(rune('a' + i)),
			Text:         "question " + string(rune('A'+i)),
			Options:      []string{"w", "x", "y", "z"},
			CorrectIndex: 1,
			Category:     "Basics",
			Difficulty:   DifficultyEasy,
			Language:     LanguageEnglish,
		})
	}
	return session
}

func TestGameScenarioWrongCorrectCorrect(t *testing.T) {
	g := NewGame()
	if err := g.Start(testSession(3)); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i, choice := range []int{0, 1, 1} {
		if _, err := g.SubmitAnswer(choice); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := g.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if g.CorrectAnswers() != 2 || g.WrongAnswers() != 1 {
		t.Fatalf("correct/wrong = %d/%d, want 2/1", g.CorrectAnswers(), g.WrongAnswers())
	}
	if g.BestStreak() != 2 || g.Streak() != 2 {
		t.Fatalf("streak/best = %d/%d, want 2/2", g.Streak(), g.BestStreak())
	}
	if g.State() != GameFinished {
		t.Fatalf("state = %s, want %s", g.State(), GameFinished)
	}
	if got := g.Accuracy(); got < 66.66 || got > 66.67 {
		t.Fatalf("accuracy = %v, want 66.67", got)
	}
}

func TestGameSubmitCountsExactlyOne(t *testing.T) {
	tests := []struct {
		name        string
		choice      int
		wantCorrect int
		wantWrong   int
	}{
		{name: "correct", choice: 1, wantCorrect: 1, wantWrong: 0},
		{name: "incorrect", choice: 3, wantCorrect: 0, wantWrong: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGame()
			_ = g.Start(testSession(2))

			rec, err := g.SubmitAnswer(tc.choice)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if rec.Correct != (tc.wantCorrect == 1) {
				t.Fatalf("record correct = %v", rec.Correct)
			}
			if g.CorrectAnswers() != tc.wantCorrect || g.WrongAnswers() != tc.wantWrong {
				t.Fatalf("correct/wrong = %d/%d, want %d/%d",
					g.CorrectAnswers(), g.WrongAnswers(), tc.wantCorrect, tc.wantWrong)
			}
		})
	}
}

func TestGameStreakResetsAndBestNeverDecreases(t *testing.T) {
	g := NewGame()
	_ = g.Start(testSession(6))

	best := 0
	for i, choice := range []int{1, 1, 1, 0, 1, 0} {
		if _, err := g.SubmitAnswer(choice); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if choice != 1 && g.Streak() != 0 {
			t.Fatalf("streak after wrong answer = %d, want 0", g.Streak())
		}
		if g.BestStreak() < best {
			t.Fatalf("best streak decreased from %d to %d", best, g.BestStreak())
		}
		best = g.BestStreak()
		_ = g.Advance()
	}

	if best != 3 {
		t.Fatalf("best streak = %d, want 3", best)
	}
}

func TestGameDoubleSubmitRejected(t *testing.T) {
	g := NewGame()
	_ = g.Start(testSession(2))

	if _, err := g.SubmitAnswer(1); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := g.SubmitAnswer(0); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("second submit err = %v, want %v", err, ErrInvalidStateTransition)
	}
	if g.CorrectAnswers() != 1 || g.WrongAnswers() != 0 || len(g.History()) != 1 {
		t.Fatalf("rejected submit mutated the game")
	}
}

func TestGameInvalidTransitions(t *testing.T) {
	t.Run("submit before start", func(t *testing.T) {
		g := NewGame()
		if _, err := g.SubmitAnswer(0); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("err = %v, want %v", err, ErrInvalidStateTransition)
		}
	})

	t.Run("submit after finish", func(t *testing.T) {
		g := NewGame()
		_ = g.Start(testSession(1))
		_, _ = g.SubmitAnswer(1)
		_ = g.Advance()
		if _, err := g.SubmitAnswer(1); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("err = %v, want %v", err, ErrInvalidStateTransition)
		}
	})

	t.Run("advance while awaiting answer", func(t *testing.T) {
		g := NewGame()
		_ = g.Start(testSession(2))
		if err := g.Advance(); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("err = %v, want %v", err, ErrInvalidStateTransition)
		}
	})

	t.Run("start while in progress", func(t *testing.T) {
		g := NewGame()
		_ = g.Start(testSession(2))
		if err := g.Start(testSession(2)); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("err = %v, want %v", err, ErrInvalidStateTransition)
		}
	})

	t.Run("out of range answer", func(t *testing.T) {
		g := NewGame()
		_ = g.Start(testSession(1))
		for _, idx := range []int{-1, 4} {
			if _, err := g.SubmitAnswer(idx); !errors.Is(err, ErrOutOfRangeAnswer) {
				t.Fatalf("submit(%d) err = %v, want %v", idx, err, ErrOutOfRangeAnswer)
			}
		}
		if g.Answered() {
			t.Fatal("out of range answer marked question as answered")
		}
	})
}

func TestGameFinishesAfterNAdvances(t *testing.T) {
	const n = 4
	g := NewGame()
	_ = g.Start(testSession(n))

	for i := 0; i < n; i++ {
		if g.State() != GameInProgress {
			t.Fatalf("state before question %d = %s", i, g.State())
		}
		q, ok := g.CurrentQuestion()
		if !ok {
			t.Fatalf("no current question at %d", i)
		}
		_, _ = g.SubmitAnswer(q.CorrectIndex)
		_ = g.Advance()
	}

	if g.State() != GameFinished {
		t.Fatalf("state = %s, want %s", g.State(), GameFinished)
	}
	if _, ok := g.CurrentQuestion(); ok {
		t.Fatal("current question returned after finish")
	}
}

func TestGameEmptySessionFinishesOnFirstCheck(t *testing.T) {
	g := NewGame()
	if err := g.Start(nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, ok := g.CurrentQuestion(); ok {
		t.Fatal("expected no question for empty session")
	}
	if g.State() != GameFinished {
		t.Fatalf("state = %s, want %s", g.State(), GameFinished)
	}
}

func TestGameResetAndRestart(t *testing.T) {
	g := NewGame()
	_ = g.Start(testSession(2))
	_, _ = g.SubmitAnswer(1)
	_ = g.Advance()
	_, _ = g.SubmitAnswer(1)
	_ = g.Advance()

	if err := g.Start(testSession(2)); err != nil {
		t.Fatalf("restart from finished: %v", err)
	}
	if g.CorrectAnswers() != 0 || len(g.History()) != 0 || g.Index() != 0 {
		t.Fatal("start did not clear counters")
	}
	if g.BestStreak() != 2 {
		t.Fatalf("best streak = %d, want 2 to survive start", g.BestStreak())
	}

	g.Reset()
	if g.State() != GameNotStarted || g.BestStreak() != 0 || g.Total() != 0 {
		t.Fatal("reset did not clear the game")
	}
}

func TestGameHistoryTimestamps(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewGame(WithClock(func() time.Time { return fixed }))
	_ = g.Start(testSession(1))

	rec, _ := g.SubmitAnswer(2)
	if !rec.AnsweredAt.Equal(fixed) {
		t.Fatalf("answered at = %v, want %v", rec.AnsweredAt, fixed)
	}
	if rec.Selected != 2 || rec.CorrectIndex != 1 || rec.Category != "Basics" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	h := g.History()
	h[0].Category = "mutated"
	if g.History()[0].Category != "Basics" {
		t.Fatal("history exposes internal slice")
	}
}
