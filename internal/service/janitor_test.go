package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/storage"
)

type fakeEvictor struct {
	cutoff time.Time
	ids    []string
}

func (f *fakeEvictor) EvictIdle(cutoff time.Time) []string {
	f.cutoff = cutoff
	return f.ids
}

func TestJanitorSweepUsesTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := &fakeEvictor{ids: []string{"a", "b"}}

	j := NewJanitor(ev, 30*time.Minute, "", zap.NewNop())
	j.now = func() time.Time { return now }

	if n := j.Sweep(); n != 2 {
		t.Fatalf("evicted = %d, want 2", n)
	}
	if want := now.Add(-30 * time.Minute); !ev.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", ev.cutoff, want)
	}
	if j.schedule != DefaultJanitorSchedule {
		t.Fatalf("schedule = %q", j.schedule)
	}
}

func TestJanitorEvictsFromStore(t *testing.T) {
	store := storage.NewGameStorage()
	store.GetOrCreate("idle")

	j := NewJanitor(store, time.Minute, "", zap.NewNop())
	j.now = func() time.Time { return time.Now().Add(time.Hour) }

	if n := j.Sweep(); n != 1 {
		t.Fatalf("evicted = %d, want 1", n)
	}
	if store.Len() != 0 {
		t.Fatal("idle game still stored")
	}
}

func TestJanitorStartRejectsBadSchedule(t *testing.T) {
	j := NewJanitor(&fakeEvictor{}, time.Minute, "not a schedule", zap.NewNop())
	if err := j.Start(context.Background()); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
}

func TestJanitorStartStopsWithContext(t *testing.T) {
	j := NewJanitor(&fakeEvictor{}, time.Minute, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
