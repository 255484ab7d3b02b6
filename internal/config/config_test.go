package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Game.MaxAttempts)
	assert.Equal(t, 5, cfg.Game.MinWordLength)
	assert.Equal(t, 12, cfg.Game.MaxWordLength)
	assert.Equal(t, "hangman_save.json", cfg.Game.SaveFile)
	assert.Equal(t, "5175", cfg.Server.Port)
	assert.Equal(t, 14*24*time.Hour, cfg.Server.JWTExpiry)
	assert.Equal(t, "sqlite", cfg.Server.GameStore)
	assert.False(t, cfg.Server.Production())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "8")
	t.Setenv("SAVE_FILE", "/tmp/slot.json")
	t.Setenv("MIN_WORD_LENGTH", "4")
	t.Setenv("MAX_WORD_LENGTH", "4")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("GAME_STORE", "memory")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Game.MaxAttempts)
	assert.Equal(t, "/tmp/slot.json", cfg.Game.SaveFile)
	assert.Equal(t, 4, cfg.Game.MinWordLength)
	assert.True(t, cfg.Server.Production())
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "memory", cfg.Server.GameStore)
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "0")
	t.Setenv("MIN_WORD_LENGTH", "9")
	t.Setenv("MAX_WORD_LENGTH", "3")
	t.Setenv("GAME_STORE", "redis")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ATTEMPTS")
	assert.Contains(t, err.Error(), "MAX_WORD_LENGTH")
	assert.Contains(t, err.Error(), "GAME_STORE")

	t.Setenv("MAX_ATTEMPTS", "six")
	_, err = Parse()
	assert.Error(t, err)
}
