// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Status: derived state of a game (playing/won/lost).
//   - Outcome: per-guess result reported to drivers.
//   - Display: read-only projection rendered by drivers.
//   - Record: lossless snapshot used by persistence.
//   - WordSource: the capability that supplies secret words.

package game

// DefaultMaxAttempts is the attempt budget used when none is configured.
const DefaultMaxAttempts = 6

// Placeholder is rendered in place of letters that have not been guessed.
const Placeholder = "_"

// Status is derived from the guess state and never stored.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Outcome reports what a single Guess call did.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeRepeated  Outcome = "repeated" // already recorded, no state change
)

// Display is what a driver shows the player after each turn.
type Display struct {
	Masked            string   `json:"masked"`            // e.g. "t _ _ t _"
	Incorrect         []string `json:"incorrect"`         // recording order
	RemainingAttempts int      `json:"remainingAttempts"`
	Status            Status   `json:"status"`
}

// Record is the full internal state of a Game.
// Export and Restore convert between the two; Restore validates.
type Record struct {
	ID                string
	Secret            string
	Correct           []string
	Incorrect         []string
	RemainingAttempts int
	MaxAttempts       int
}

// WordSource supplies secret words within inclusive length bounds.
type WordSource interface {
	PickWord(minLen, maxLen int) (string, error)
}
