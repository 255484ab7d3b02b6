package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

// Codec persists a single game to a named file.
type Codec struct {
	path string
}

// NewCodec returns a Codec bound to path.
func NewCodec(path string) *Codec { return &Codec{path: path} }

// Path reports the file the codec reads and writes.
func (c *Codec) Path() string { return c.path }

// Save writes g to the save file. The document is written to a temporary
// file in the same directory and renamed over the target, so a failed
// write leaves any previous save in place. The parent directory must exist.
func (c *Codec) Save(g *game.Game) error {
	data, err := Encode(g)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrResourceUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrResourceUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}

	log.Debug().Str("path", c.path).Str("gameId", g.ID()).Msg("game saved")
	return nil
}

// Load reads and decodes the save file. A missing or unreadable file is
// ErrResourceUnavailable (a missing one also matches fs.ErrNotExist);
// undecodable contents are ErrCorruptSave.
func (c *Codec) Load() (*game.Game, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	g, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("path", c.path).Msg("rejecting save file")
		return nil, err
	}
	log.Debug().Str("path", c.path).Str("gameId", g.ID()).Msg("game loaded")
	return g, nil
}

// Exists reports whether a regular file is present at the save path.
func (c *Codec) Exists() bool {
	fi, err := os.Stat(c.path)
	return err == nil && fi.Mode().IsRegular()
}

// Remove deletes the save file. A missing file is not an error.
func (c *Codec) Remove() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	return nil
}
