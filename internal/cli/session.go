// internal/cli/session.go
//
// Interactive text driver for a single hangman session.
// Responsibilities:
//   - Offer new game vs. resume from the save file.
//   - Read one line per turn: a letter, or "save" to save and exit.
//   - Render the engine's display state after every turn.
//
// The driver never inspects guess sets itself; it only renders game.Display.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/save"
)

// Result describes how a session ended.
type Result string

const (
	ResultWon   Result = "won"
	ResultLost  Result = "lost"
	ResultSaved Result = "saved"
	ResultQuit  Result = "quit" // input closed before the game ended
)

const saveCommand = "save"

// Session wires the engine to an input and an output stream.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	codec  *save.Codec
	source game.WordSource
	cfg    config.GameConfig
}

// New constructs a Session. source supplies secret words for new games and
// codec handles the save file.
func New(in io.Reader, out io.Writer, codec *save.Codec, source game.WordSource, cfg config.GameConfig) *Session {
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		codec:  codec,
		source: source,
		cfg:    cfg,
	}
}

// Run plays one session to completion.
func (s *Session) Run(ctx context.Context) (Result, error) {
	g, resumed, err := s.start()
	if err != nil {
		return "", err
	}
	log.Debug().Str("gameId", g.ID()).Bool("resumed", resumed).Msg("session started")

	for g.Status() == game.StatusPlaying {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		s.render(g.Display())
		s.printf("\nEnter a letter (or type '%s' to save): ", saveCommand)

		line, ok := s.readLine()
		if !ok {
			s.printf("\n")
			return ResultQuit, s.in.Err()
		}
		if strings.ToLower(line) == saveCommand {
			if err := s.codec.Save(g); err != nil {
				log.Error().Err(err).Str("path", s.codec.Path()).Msg("save failed")
				s.printf("Could not save the game: %v\n", err)
				continue
			}
			s.printf("Game saved to %s!\nExiting after save...\n", s.codec.Path())
			return ResultSaved, nil
		}

		outcome, err := g.Guess(line)
		switch {
		case errors.Is(err, game.ErrInvalidInput):
			s.printf("Invalid input. Please enter a single letter.\n")
		case err != nil:
			return "", err
		case outcome == game.OutcomeRepeated:
			s.printf("You've already guessed that letter.\n")
		}
	}

	s.render(g.Display())
	result := ResultLost
	if g.IsWon() {
		result = ResultWon
		s.printf("\nYou won! The word was '%s'.\n", g.Secret())
	} else {
		s.printf("\nYou lost. The word was '%s'.\n", g.Secret())
	}

	if resumed {
		if err := s.codec.Remove(); err != nil {
			log.Warn().Err(err).Str("path", s.codec.Path()).Msg("could not remove finished save")
		}
	}
	log.Info().Str("gameId", g.ID()).Str("result", string(result)).Msg("session finished")
	return result, nil
}

// start shows the menu and returns a new or resumed game.
func (s *Session) start() (*game.Game, bool, error) {
	s.printf("=== Hangman Game ===\n1. New Game\n2. Load Game\nChoose an option: ")
	option, _ := s.readLine()

	if option == "2" {
		g, err := s.resume()
		if err == nil {
			return g, true, nil
		}
		s.printf("Could not load game. Starting a new one.\n")
	}

	g, err := game.NewFromSource(s.source, s.cfg.MinWordLength, s.cfg.MaxWordLength,
		game.WithMaxAttempts(s.cfg.MaxAttempts))
	if err != nil {
		return nil, false, fmt.Errorf("new game: %w", err)
	}
	return g, false, nil
}

func (s *Session) resume() (*game.Game, error) {
	if !s.codec.Exists() {
		s.printf("No save file found.\n")
		return nil, save.ErrResourceUnavailable
	}
	g, err := s.codec.Load()
	switch {
	case errors.Is(err, save.ErrCorruptSave):
		s.printf("The save file is corrupt.\n")
	case err != nil:
		s.printf("The save file could not be read.\n")
	}
	return g, err
}

func (s *Session) render(d game.Display) {
	s.printf("\nWord: %s\n", d.Masked)
	s.printf("Incorrect guesses: %s\n", strings.Join(d.Incorrect, ", "))
	s.printf("Remaining attempts: %d\n", d.RemainingAttempts)
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
