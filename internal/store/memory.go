// internal/store/memory.go
//
// In-memory session store for games played over HTTP.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each game has its own mutex so that
//     requests for one game are serialized without blocking the others.
//   - State is lost when the process restarts (in-progress games are never
//     persisted).
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/sedecordle/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the session interface for games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// With runs fn with exclusive access to the game with the given id.
	// fn's error is returned unchanged.
	With(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game; unknown ids are ignored.
	Delete(ctx context.Context, id string) error

	// Prune drops games untouched since before cutoff and returns how many.
	Prune(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	mu      sync.Mutex
	g       *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) With(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}
