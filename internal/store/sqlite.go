package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/save"
)

// sqlStore keeps one encoded save document per game in game_states.
type sqlStore struct {
	db *sql.DB
}

// NewSQLStore returns a Store backed by the game_states table.
// The database must already be migrated.
func NewSQLStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Save(ctx context.Context, g *game.Game) error {
	data, err := save.Encode(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID(), err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game_states (id, state, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at`,
		g.ID(), data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID(), err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, id string) (*game.Game, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM game_states WHERE id=?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	g, err := save.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	return g, nil
}
