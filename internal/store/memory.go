// internal/store/memory.go
//
// In-memory store for game sessions served over HTTP.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Beyond the capacity, finished games are dropped oldest-first, then
//     games in play that have not been saved for longer than the idle timeout.
//
// Notes:
//   - Save snapshots whether the game is finished and when it was saved.
//     Eviction only looks at that snapshot, never at the live game, so
//     callers must serialize Save with their own mutations of g.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("not found")

// Games persists game sessions.
type Games interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)
}

type entry struct {
	g     *game.Game
	done  bool
	saved time.Time
}

// Memory is a map-backed Games implementation.
type Memory struct {
	mu    sync.RWMutex
	games map[string]entry
	order []string // insertion order, for eviction
	limit int
	idle  time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs an in-memory store. limit <= 0 keeps every game.
// idle <= 0 never evicts games in play.
func NewMemoryStore(limit int, idle time.Duration) *Memory {
	return &Memory{games: make(map[string]entry), limit: limit, idle: idle, now: time.Now}
}

// Save adds or updates the game in the map.
func (m *Memory) Save(_ context.Context, g *game.Game) error {
	e := entry{g: g, done: g.Finished(), saved: m.now()}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		m.order = append(m.order, g.ID)
	}
	m.games[g.ID] = e
	m.evict(e.saved)
	return nil
}

// evict trims the store to its limit. Callers hold mu.
func (m *Memory) evict(now time.Time) {
	if m.limit <= 0 || len(m.games) <= m.limit {
		return
	}
	m.dropWhile(func(e entry) bool { return e.done })
	if m.idle > 0 {
		m.dropWhile(func(e entry) bool { return now.Sub(e.saved) > m.idle })
	}
}

// dropWhile removes the oldest games matching fn while over the limit.
func (m *Memory) dropWhile(fn func(entry) bool) {
	kept := m.order[:0]
	for _, id := range m.order {
		if len(m.games) > m.limit && fn(m.games[id]) {
			delete(m.games, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}

// Get looks up a game by ID.
func (m *Memory) Get(_ context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.g, nil
	}
	return nil, ErrNotFound
}

// Len reports how many games are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
