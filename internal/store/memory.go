// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Selected with GAME_STORE=memory when in-progress games need not survive a
// restart. Accounts, history and daily results stay in SQLite either way.
//
// Characteristics:
//   - Keeps game.Record snapshots keyed by ID; Get restores a fresh *game.Game,
//     so callers never share a live engine.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game is not found.
	Get(ctx context.Context, id string) (*game.Game, error)
}

// New returns the Store named by kind: "memory" or "sqlite".
// db is only used by the sqlite store and must already be migrated.
func New(kind string, db *sql.DB) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if db == nil {
			return nil, errors.New("sqlite store needs a database")
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown game store %q", kind)
	}
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]game.Record
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Record)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = g.Export()
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	rec, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return game.Restore(rec)
}
