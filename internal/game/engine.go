// internal/game/engine.go
//
// Core game engine for a single hangman session.
// Responsibilities:
//   - Create new games with a normalized secret word and an attempt budget.
//   - Validate and apply letter guesses (single a–z letter, case-insensitive).
//   - Track state transitions: playing → won/lost.
//   - Render the masked display and export/restore full snapshots.
//
// A Game has a single owner and is not safe for concurrent use.
package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Game holds the state of a single hangman session.
type Game struct {
	id          string
	secret      string
	correct     []byte // letters of secret that were guessed, recording order
	incorrect   []byte // letters not in secret that were guessed, recording order
	remaining   int
	maxAttempts int
}

// Option configures a new Game.
type Option func(*Game)

// WithMaxAttempts overrides the attempt budget (default 6).
func WithMaxAttempts(n int) Option {
	return func(g *Game) { g.maxAttempts = n }
}

// WithID sets a fixed identifier instead of a random one.
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// New constructs a game for word. The word is lowercased and must then
// consist only of letters a–z.
func New(word string, opts ...Option) (*Game, error) {
	secret, ok := lowerLetters(word)
	if secret == "" || !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	g := &Game{
		secret:      secret,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxAttempts < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAttempts, g.maxAttempts)
	}
	if g.id == "" {
		g.id = randomID()
	}
	g.remaining = g.maxAttempts
	return g, nil
}

// NewFromSource draws a secret word from src within [minLen, maxLen]
// and constructs a game for it.
func NewFromSource(src WordSource, minLen, maxLen int, opts ...Option) (*Game, error) {
	word, err := src.PickWord(minLen, maxLen)
	if err != nil {
		return nil, fmt.Errorf("pick word: %w", err)
	}
	return New(word, opts...)
}

// Guess records a single letter.
//
// Validation rules:
//   - Game must not be finished.
//   - Input must be exactly one letter a–z or A–Z.
//
// A letter that was already recorded is reported as OutcomeRepeated
// and leaves the state untouched; only a newly recorded incorrect letter
// spends an attempt.
func (g *Game) Guess(letter string) (Outcome, error) {
	if len(letter) != 1 || !isLetter(letter[0]) {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, letter)
	}
	if g.finished() {
		return "", ErrFinished
	}
	c := toLower(letter[0])

	if contains(g.correct, c) || contains(g.incorrect, c) {
		return OutcomeRepeated, nil
	}
	if strings.IndexByte(g.secret, c) >= 0 {
		g.correct = append(g.correct, c)
		return OutcomeCorrect, nil
	}
	g.incorrect = append(g.incorrect, c)
	g.remaining--
	return OutcomeIncorrect, nil
}

// IsWon reports whether every distinct letter of the secret was guessed.
func (g *Game) IsWon() bool {
	for i := 0; i < len(g.secret); i++ {
		if !contains(g.correct, g.secret[i]) {
			return false
		}
	}
	return true
}

// IsLost reports whether the attempt budget is exhausted.
func (g *Game) IsLost() bool { return g.remaining <= 0 }

// Status reports the derived game state.
func (g *Game) Status() Status {
	switch {
	case g.IsWon():
		return StatusWon
	case g.IsLost():
		return StatusLost
	default:
		return StatusPlaying
	}
}

func (g *Game) finished() bool { return g.Status() != StatusPlaying }

// Display renders the masked word, incorrect letters and remaining attempts.
// Every occurrence of a guessed letter is revealed.
func (g *Game) Display() Display {
	cells := make([]string, len(g.secret))
	for i := 0; i < len(g.secret); i++ {
		if contains(g.correct, g.secret[i]) {
			cells[i] = string(g.secret[i])
		} else {
			cells[i] = Placeholder
		}
	}
	return Display{
		Masked:            strings.Join(cells, " "),
		Incorrect:         letters(g.incorrect),
		RemainingAttempts: g.remaining,
		Status:            g.Status(),
	}
}

func (g *Game) ID() string             { return g.id }
func (g *Game) Secret() string         { return g.secret }
func (g *Game) RemainingAttempts() int { return g.remaining }
func (g *Game) MaxAttempts() int       { return g.maxAttempts }

// CorrectGuesses returns a copy of the correct letters in recording order.
func (g *Game) CorrectGuesses() []string { return letters(g.correct) }

// IncorrectGuesses returns a copy of the incorrect letters in recording order.
func (g *Game) IncorrectGuesses() []string { return letters(g.incorrect) }

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// lowerLetters lowercases s when every byte is an ASCII letter.
func lowerLetters(s string) (string, bool) {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return "", false
		}
		b[i] = toLower(s[i])
	}
	return string(b), true
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func contains(set []byte, c byte) bool {
	for _, x := range set {
		if x == c {
			return true
		}
	}
	return false
}

func letters(set []byte) []string {
	out := make([]string, len(set))
	for i, c := range set {
		out[i] = string(c)
	}
	return out
}

func randomID() string { return uuid.NewString() }
