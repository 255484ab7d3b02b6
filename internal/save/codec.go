// internal/save/codec.go
//
// Save/resume support for hangman games.
// Responsibilities:
//   - Encode a *game.Game into a versioned JSON document and back.
//   - Reject documents that do not describe a valid game (ErrCorruptSave).
//   - Persist one game to a named file (Codec) with write-then-rename.
//
// Format (version 1):
//
//	{
//	  "version": 1,
//	  "id": "3f2a...",
//	  "secret_word": "tests",
//	  "correct_guesses": ["t"],
//	  "incorrect_guesses": ["z"],
//	  "remaining_attempts": 5,
//	  "max_attempts": 6,
//	  "saved_at": "2024-01-02T15:04:05Z"
//	}
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// Version is the current document version written by Encode.
const Version = 1

var (
	ErrCorruptSave         = errors.New("corrupt save")
	ErrResourceUnavailable = errors.New("save storage unavailable")
)

// document is the on-disk shape of a saved game.
type document struct {
	Version           int       `json:"version"`
	ID                string    `json:"id"`
	SecretWord        string    `json:"secret_word"`
	CorrectGuesses    []string  `json:"correct_guesses"`
	IncorrectGuesses  []string  `json:"incorrect_guesses"`
	RemainingAttempts int       `json:"remaining_attempts"`
	MaxAttempts       int       `json:"max_attempts"`
	SavedAt           time.Time `json:"saved_at"`
}

// Encode serializes the full state of g.
func Encode(g *game.Game) ([]byte, error) {
	r := g.Export()
	doc := document{
		Version:           Version,
		ID:                r.ID,
		SecretWord:        r.Secret,
		CorrectGuesses:    r.Correct,
		IncorrectGuesses:  r.Incorrect,
		RemainingAttempts: r.RemainingAttempts,
		MaxAttempts:       r.MaxAttempts,
		SavedAt:           time.Now().UTC().Truncate(time.Second),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode is the inverse of Encode. Any document that does not decode into
// a valid game is reported as ErrCorruptSave.
func Decode(data []byte) (*game.Game, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrCorruptSave)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSave, doc.Version)
	}
	g, err := game.Restore(game.Record{
		ID:                doc.ID,
		Secret:            doc.SecretWord,
		Correct:           doc.CorrectGuesses,
		Incorrect:         doc.IncorrectGuesses,
		RemainingAttempts: doc.RemainingAttempts,
		MaxAttempts:       doc.MaxAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	return g, nil
}
