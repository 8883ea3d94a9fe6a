package storage

import (
	"sort"
	"sync"
	"testing"
	"time"
)

func TestGetOrCreateReturnsSameEntry(t *testing.T) {
	s := NewGameStorage()

	a := s.GetOrCreate("p1")
	b := s.GetOrCreate("p1")
	if a != b {
		t.Fatal("GetOrCreate returned different entries for one player")
	}
	if a.Game == nil {
		t.Fatal("new entry has no game")
	}
	if s.GetOrCreate("p2") == a {
		t.Fatal("players share an entry")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	s := NewGameStorage()

	var wg sync.WaitGroup
	entries := make([]*GameEntry, 50)
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entries[i] = s.GetOrCreate("same")
		}(i)
	}
	wg.Wait()

	for _, e := range entries {
		if e != entries[0] {
			t.Fatal("concurrent GetOrCreate produced more than one entry")
		}
	}
}

func TestGetAndDelete(t *testing.T) {
	s := NewGameStorage()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("Get found a missing player")
	}

	s.GetOrCreate("p1")
	if _, ok := s.Get("p1"); !ok {
		t.Fatal("Get did not find a stored player")
	}

	s.Delete("p1")
	if _, ok := s.Get("p1"); ok {
		t.Fatal("Delete left the player in place")
	}
}

func TestEvictIdle(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewGameStorage()

	for id, age := range map[string]time.Duration{
		"old":    2 * time.Hour,
		"older":  3 * time.Hour,
		"recent": time.Minute,
	} {
		e := s.GetOrCreate(id)
		e.Mu.Lock()
		e.Touch(base.Add(-age))
		e.Mu.Unlock()
	}

	busy := s.GetOrCreate("busy")
	busy.Mu.Lock()
	busy.Touch(base.Add(-5 * time.Hour))

	evicted := s.EvictIdle(base.Add(-time.Hour))
	busy.Mu.Unlock()

	sort.Strings(evicted)
	if len(evicted) != 2 || evicted[0] != "old" || evicted[1] != "older" {
		t.Fatalf("evicted = %v, want [old older]", evicted)
	}
	if _, ok := s.Get("recent"); !ok {
		t.Fatal("recent game evicted")
	}
	if _, ok := s.Get("busy"); !ok {
		t.Fatal("locked game evicted")
	}
}

func TestRemovedEntriesAreMarked(t *testing.T) {
	s := NewGameStorage()

	idle := s.GetOrCreate("idle")
	deleted := s.GetOrCreate("deleted")
	kept := s.GetOrCreate("kept")
	kept.Mu.Lock()
	kept.Touch(time.Now().Add(time.Hour))
	kept.Mu.Unlock()

	s.EvictIdle(time.Now().Add(time.Minute))
	s.Delete("deleted")

	for name, e := range map[string]*GameEntry{"idle": idle, "deleted": deleted} {
		e.Mu.Lock()
		removed := e.Removed()
		e.Mu.Unlock()
		if !removed {
			t.Fatalf("%s entry not marked removed", name)
		}
	}

	kept.Mu.Lock()
	defer kept.Mu.Unlock()
	if kept.Removed() {
		t.Fatal("live entry marked removed")
	}
}
