package game

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid guess: expected a single letter a-z")
	ErrInvalidWord     = errors.New("invalid secret word: expected letters a-z")
	ErrInvalidAttempts = errors.New("invalid attempt budget")
	ErrFinished        = errors.New("game finished")
	ErrInvalidRecord   = errors.New("invalid game record")
)
