// Command hangman plays hangman in the terminal, or serves the game over
// HTTP with "hangman serve".
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/cli"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/save"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	cfg, err := config.Load()
	setupLogging(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	mode := "play"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	switch mode {
	case "play":
		// Interrupts keep their default behavior while blocked on stdin.
		err = play(context.Background(), cfg)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = serve(ctx, cfg)
		stop()
	default:
		log.Fatal().Str("mode", mode).Msg("usage: hangman [play|serve]")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("mode", mode).Msg("hangman exited")
	}
}

func setupLogging(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

func play(ctx context.Context, cfg config.Config) error {
	dict, err := words.Ensure(ctx, nil, cfg.Game.DictionaryURL, cfg.Game.DictionaryFile)
	if err != nil {
		return err
	}
	codec := save.NewCodec(cfg.Game.SaveFile)
	_, err = cli.New(os.Stdin, os.Stdout, codec, dict, cfg.Game).Run(ctx)
	return err
}

func serve(ctx context.Context, cfg config.Config) error {
	dict, err := words.Ensure(ctx, nil, cfg.Game.DictionaryURL, cfg.Game.DictionaryFile)
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}

	games, err := store.New(cfg.Server.GameStore, db)
	if err != nil {
		return err
	}
	srv := httpserver.New(games, db, dict, cfg)
	hs := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Server.GameStore).Int("words", dict.Len()).Msg("starting hangman server")
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}
