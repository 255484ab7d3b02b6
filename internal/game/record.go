package game

import (
	"fmt"
	"strings"
)

// Export returns a snapshot of the full game state.
func (g *Game) Export() Record {
	return Record{
		ID:                g.id,
		Secret:            g.secret,
		Correct:           letters(g.correct),
		Incorrect:         letters(g.incorrect),
		RemainingAttempts: g.remaining,
		MaxAttempts:       g.maxAttempts,
	}
}

// Restore rebuilds a Game from a snapshot. Every invariant a live Game
// maintains is checked; violations are reported as ErrInvalidRecord.
func Restore(r Record) (*Game, error) {
	if r.Secret == "" || !isAlpha(r.Secret) {
		return nil, fmt.Errorf("%w: secret %q", ErrInvalidRecord, r.Secret)
	}
	if r.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrInvalidRecord, r.MaxAttempts)
	}

	var seen [26]bool
	correct, err := restoreSet(r.Correct, &seen)
	if err != nil {
		return nil, err
	}
	incorrect, err := restoreSet(r.Incorrect, &seen)
	if err != nil {
		return nil, err
	}
	for _, c := range correct {
		if strings.IndexByte(r.Secret, c) < 0 {
			return nil, fmt.Errorf("%w: correct letter %q not in secret", ErrInvalidRecord, c)
		}
	}
	for _, c := range incorrect {
		if strings.IndexByte(r.Secret, c) >= 0 {
			return nil, fmt.Errorf("%w: incorrect letter %q is in secret", ErrInvalidRecord, c)
		}
	}
	if len(incorrect) > r.MaxAttempts {
		return nil, fmt.Errorf("%w: %d incorrect guesses exceed budget %d", ErrInvalidRecord, len(incorrect), r.MaxAttempts)
	}
	if r.RemainingAttempts != r.MaxAttempts-len(incorrect) {
		return nil, fmt.Errorf("%w: remaining attempts %d, want %d",
			ErrInvalidRecord, r.RemainingAttempts, r.MaxAttempts-len(incorrect))
	}

	id := r.ID
	if id == "" {
		id = randomID()
	}
	g := &Game{
		id:          id,
		secret:      r.Secret,
		correct:     correct,
		incorrect:   incorrect,
		remaining:   r.RemainingAttempts,
		maxAttempts: r.MaxAttempts,
	}
	// No guess is accepted once either terminal state is reached.
	if g.IsWon() && g.IsLost() {
		return nil, fmt.Errorf("%w: both won and lost", ErrInvalidRecord)
	}
	return g, nil
}

// restoreSet validates single lowercase letters and rejects any letter
// already marked in seen, which covers duplicates within and across sets.
func restoreSet(in []string, seen *[26]bool) ([]byte, error) {
	out := make([]byte, 0, len(in))
	for _, s := range in {
		if len(s) != 1 || s[0] < 'a' || s[0] > 'z' {
			return nil, fmt.Errorf("%w: guess %q", ErrInvalidRecord, s)
		}
		c := s[0]
		if seen[idx(c)] {
			return nil, fmt.Errorf("%w: letter %q recorded twice", ErrInvalidRecord, s)
		}
		seen[idx(c)] = true
		out = append(out, c)
	}
	return out, nil
}
