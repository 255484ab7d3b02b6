package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/save"
	"github.com/robalobadob/hangman/internal/words"
)

var testCfg = config.GameConfig{MaxAttempts: 6, MinWordLength: 3, MaxWordLength: 12}

type session struct {
	codec *save.Codec
	out   *bytes.Buffer
}

func newSession(t *testing.T) *session {
	t.Helper()
	return &session{
		codec: save.NewCodec(filepath.Join(t.TempDir(), "save.json")),
		out:   &bytes.Buffer{},
	}
}

func (ts *session) run(t *testing.T, word string, lines ...string) Result {
	t.Helper()
	ts.out.Reset()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	s := New(in, ts.out, ts.codec, words.New([]string{word}), testCfg)
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestRun_Win(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "dog", "1", "d", "O", "g")

	assert.Equal(t, ResultWon, res)
	out := ts.out.String()
	assert.Contains(t, out, "=== Hangman Game ===")
	assert.Contains(t, out, "Word: _ _ _")
	assert.Contains(t, out, "Word: d o g")
	assert.Contains(t, out, "You won! The word was 'dog'.")
}

func TestRun_Loss(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "cat", "1", "q", "w", "e", "r", "y", "u")

	assert.Equal(t, ResultLost, res)
	out := ts.out.String()
	assert.Contains(t, out, "Incorrect guesses: q, w, e, r, y, u")
	assert.Contains(t, out, "Remaining attempts: 0")
	assert.Contains(t, out, "You lost. The word was 'cat'.")
}

func TestRun_InvalidAndRepeatedInput(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "cat", "1", "ab", "7", "", "\u212A", "z", "z", "c", "a", "t")

	assert.Equal(t, ResultWon, res)
	out := ts.out.String()
	assert.Equal(t, 4, strings.Count(out, "Invalid input. Please enter a single letter."))
	assert.Equal(t, 1, strings.Count(out, "You've already guessed that letter."))
	assert.Contains(t, out, "Remaining attempts: 5")
}

func TestRun_SaveThenResume(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "cat", "1", "a", "z", "q", "save")
	assert.Equal(t, ResultSaved, res)
	assert.Contains(t, ts.out.String(), "Game saved to "+ts.codec.Path())
	require.True(t, ts.codec.Exists())

	// The word source is irrelevant when resuming.
	res = ts.run(t, "unused", "2", "c", "t")
	assert.Equal(t, ResultWon, res)
	out := ts.out.String()
	assert.Contains(t, out, "Word: _ a _")
	assert.Contains(t, out, "Incorrect guesses: z, q")
	assert.Contains(t, out, "Remaining attempts: 4")
	assert.Contains(t, out, "You won! The word was 'cat'.")

	// A finished resumed game clears the save slot.
	assert.False(t, ts.codec.Exists())
}

func TestRun_LoadWithoutSaveStartsNewGame(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "ox", "2", "o", "x")

	assert.Equal(t, ResultWon, res)
	out := ts.out.String()
	assert.Contains(t, out, "No save file found.")
	assert.Contains(t, out, "Could not load game. Starting a new one.")
}

func TestRun_CorruptSaveStartsNewGame(t *testing.T) {
	ts := newSession(t)
	require.NoError(t, os.WriteFile(ts.codec.Path(), []byte(`{"version":1,"secret_word":""}`), 0o644))

	res := ts.run(t, "ox", "2", "o", "x")
	assert.Equal(t, ResultWon, res)
	assert.Contains(t, ts.out.String(), "The save file is corrupt.")
	assert.Contains(t, ts.out.String(), "Could not load game. Starting a new one.")
}

func TestRun_SaveFailureKeepsPlaying(t *testing.T) {
	ts := newSession(t)
	ts.codec = save.NewCodec(filepath.Join(t.TempDir(), "missing", "save.json"))

	res := ts.run(t, "ox", "1", "o", "save", "x")
	assert.Equal(t, ResultWon, res)
	out := ts.out.String()
	assert.Contains(t, out, "Could not save the game")
	assert.Contains(t, out, "Word: o _")
}

func TestRun_InputClosed(t *testing.T) {
	ts := newSession(t)
	res := ts.run(t, "cat", "1", "c")
	assert.Equal(t, ResultQuit, res)
	assert.False(t, ts.codec.Exists())
}

func TestRun_NoCandidateWords(t *testing.T) {
	ts := newSession(t)
	s := New(strings.NewReader("1\n"), ts.out, ts.codec, words.New([]string{"extraordinarily"}), testCfg)
	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, words.ErrNoCandidates)
}

func TestRun_CancelledContext(t *testing.T) {
	ts := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(strings.NewReader("1\nc\n"), ts.out, ts.codec, words.New([]string{"cat"}), testCfg)
	_, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UsesConfiguredBudget(t *testing.T) {
	ts := newSession(t)
	in := strings.NewReader("1\nq\n")
	cfg := testCfg
	cfg.MaxAttempts = 1
	s := New(in, ts.out, ts.codec, words.New([]string{"cat"}), cfg)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultLost, res)
	assert.Contains(t, ts.out.String(), "Remaining attempts: 1")
	assert.NotContains(t, ts.out.String(), "You won!")
}
