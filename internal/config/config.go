// Package config gathers every tunable of the game and the server into one
// explicit value. Values come from the environment, optionally seeded from
// a .env file; nothing else in the module reads the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is passed to drivers, codecs and stores at construction.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Game   GameConfig
	Server ServerConfig
}

// GameConfig controls word selection, the attempt budget and the save file.
type GameConfig struct {
	DictionaryURL  string `env:"DICTIONARY_URL"  envDefault:"https://raw.githubusercontent.com/first20hours/google-10000-english/master/google-10000-english-no-swears.txt"`
	DictionaryFile string `env:"DICTIONARY_FILE" envDefault:"google-10000-english-no-swears.txt"`
	SaveFile       string `env:"SAVE_FILE"       envDefault:"hangman_save.json"`
	MaxAttempts    int    `env:"MAX_ATTEMPTS"    envDefault:"6"`
	MinWordLength  int    `env:"MIN_WORD_LENGTH" envDefault:"5"`
	MaxWordLength  int    `env:"MAX_WORD_LENGTH" envDefault:"12"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           string        `env:"PORT"            envDefault:"5175"`
	DBPath         string        `env:"DB_PATH"         envDefault:"./data/hangman.db"`
	GameStore      string        `env:"GAME_STORE"      envDefault:"sqlite"`
	Env            string        `env:"APP_ENV"         envDefault:"development"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET"      envDefault:"dev_secret_change_me"`
	JWTExpiry      time.Duration `env:"JWT_EXPIRY"      envDefault:"336h"`
	CookieName     string        `env:"COOKIE_NAME"     envDefault:"hangman_token"`
	DailySalt      string        `env:"DAILY_SALT"      envDefault:"local_dev_salt"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Production reports whether cookies should be marked Secure.
func (s ServerConfig) Production() bool { return s.Env == "production" }

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks relationships between fields.
func (c Config) Validate() error {
	var errs []error
	g := c.Game
	if g.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", g.MaxAttempts))
	}
	if g.MinWordLength < 1 {
		errs = append(errs, fmt.Errorf("MIN_WORD_LENGTH must be at least 1, got %d", g.MinWordLength))
	}
	if g.MaxWordLength < g.MinWordLength {
		errs = append(errs, fmt.Errorf("MAX_WORD_LENGTH %d is below MIN_WORD_LENGTH %d", g.MaxWordLength, g.MinWordLength))
	}
	if g.SaveFile == "" {
		errs = append(errs, errors.New("SAVE_FILE must not be empty"))
	}
	switch c.Server.GameStore {
	case "sqlite", "memory":
	default:
		errs = append(errs, fmt.Errorf("GAME_STORE must be sqlite or memory, got %q", c.Server.GameStore))
	}
	return errors.Join(errs...)
}
