// internal/words/words.go
//
// Provides the dictionary that supplies secret words to the game engine.
//
// Responsibilities:
//   - Normalize word lists (trim, lowercase, a–z only, no duplicates).
//   - Filter candidates by inclusive length bounds.
//   - Pick a random candidate (implements game.WordSource).
//
// Dictionaries are plain values; nothing here is process-wide state.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/hangman/assets"
)

var ErrNoCandidates = errors.New("words: no candidate words in range")

// Dictionary is an immutable list of normalized words.
type Dictionary struct {
	words []string
}

// New builds a dictionary from raw entries. Entries that are not purely
// ASCII letters after trimming are dropped, as are duplicates.
func New(list []string) *Dictionary {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		w := strings.TrimSpace(raw)
		if w == "" || !isLetters(w) {
			continue
		}
		w = strings.ToLower(w)
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return &Dictionary{words: out}
}

// Load reads one word per line from path.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads one word per line from r.
func Read(r io.Reader) (*Dictionary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(lines), nil
}

// Embedded returns the small dictionary compiled into the binary.
func Embedded() (*Dictionary, error) {
	list, err := assets.Words()
	if err != nil {
		return nil, fmt.Errorf("embedded words: %w", err)
	}
	return New(list), nil
}

// Len reports the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Words returns a copy of the word list.
func (d *Dictionary) Words() []string { return append([]string(nil), d.words...) }

// Filter returns the words whose length lies in [minLen, maxLen].
func (d *Dictionary) Filter(minLen, maxLen int) []string {
	var out []string
	for _, w := range d.words {
		if len(w) >= minLen && len(w) <= maxLen {
			out = append(out, w)
		}
	}
	return out
}

// PickWord returns a cryptographically random word within the bounds.
func (d *Dictionary) PickWord(minLen, maxLen int) (string, error) {
	candidates := d.Filter(minLen, maxLen)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %d-%d letters among %d words", ErrNoCandidates, minLen, maxLen, len(d.words))
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return "", err
	}
	return candidates[nBig.Int64()], nil
}

// isLetters reports whether s is all ASCII letters.
func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
