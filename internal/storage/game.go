package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

// GameEntry is one player's game together with the lock that serializes it.
// Callers must hold Mu while touching Game or the session settings.
type GameEntry struct {
	Mu sync.Mutex

	Game       *entities.Game
	Language   entities.Language
	Difficulty entities.Difficulty
	Count      int

	touched time.Time
	removed bool
}

// Touch marks the entry as used at t. Call it with Mu held.
func (e *GameEntry) Touch(t time.Time) {
	e.touched = t
}

// Touched returns the last time the entry was used. Call it with Mu held.
func (e *GameEntry) Touched() time.Time {
	return e.touched
}

// Removed reports whether the store dropped the entry after the caller
// looked it up. Call it with Mu held; a removed entry must not be used.
func (e *GameEntry) Removed() bool {
	return e.removed
}

// GameStorage provides in-memory storage for games by player ID.
type GameStorage struct {
	mu    sync.RWMutex
	games map[string]*GameEntry
	now   func() time.Time
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		games: make(map[string]*GameEntry),
		now:   time.Now,
	}
}

// GetOrCreate returns the entry for playerID, creating a fresh game if needed.
func (s *GameStorage) GetOrCreate(playerID string) *GameEntry {
	s.mu.RLock()
	entry, ok := s.games[playerID]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok = s.games[playerID]; ok {
		return entry
	}

	entry = &GameEntry{
		Game:       entities.NewGame(),
		Language:   entities.LanguageEnglish,
		Difficulty: entities.DifficultyEasy,
		touched:    s.now(),
	}
	s.games[playerID] = entry

	return entry
}

// Get retrieves the entry for playerID.
func (s *GameStorage) Get(playerID string) (*GameEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.games[playerID]
	return entry, ok
}

// Delete removes the game for playerID.
func (s *GameStorage) Delete(playerID string) {
	s.mu.Lock()
	entry, ok := s.games[playerID]
	delete(s.games, playerID)
	s.mu.Unlock()

	if ok {
		entry.Mu.Lock()
		entry.removed = true
		entry.Mu.Unlock()
	}
}

// Len returns the number of stored games.
func (s *GameStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// EvictIdle removes games not touched since cutoff and returns their player IDs.
// Entries locked by an in-flight request are skipped.
func (s *GameStorage) EvictIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, entry := range s.games {
		if !entry.Mu.TryLock() {
			continue
		}
		if entry.touched.Before(cutoff) {
			entry.removed = true
			delete(s.games, id)
			evicted = append(evicted, id)
		}
		entry.Mu.Unlock()
	}

	return evicted
}
