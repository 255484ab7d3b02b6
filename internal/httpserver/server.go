// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Games live in a store.Store; every guess is load → Guess → save.
//   - The games table only tracks ownership, counters and status for history.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Server bundles router, game store, dictionary and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	dict  *words.Dictionary
	game  config.GameConfig
	cfg   config.ServerConfig
	daily *dailyServer

	// guards load → mutate → save of a game
	mu sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, dict *words.Dictionary, cfg config.Config) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		db:    db,
		dict:  dict,
		game:  cfg.Game,
		cfg:   cfg.Server,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(s.cfg.RequestTimeout))
	}
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Handler exposes the router (useful for tests and custom listeners).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}

// gameRes is the public view of a game. The answer is only revealed
// once the game is over.
type gameRes struct {
	GameID string `json:"gameId"`
	game.Display
	Outcome game.Outcome `json:"outcome,omitempty"`
	Answer  string       `json:"answer,omitempty"`
}

func viewOf(g *game.Game, outcome game.Outcome) gameRes {
	res := gameRes{GameID: g.ID(), Display: g.Display(), Outcome: outcome}
	if res.Status != game.StatusPlaying {
		res.Answer = g.Secret()
	}
	return res
}

// handleNewGame creates a game and records an owner row
// (user_id or anonymous_id) for history and stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	opts := []game.Option{game.WithMaxAttempts(s.game.MaxAttempts)}
	var (
		g   *game.Game
		err error
	)
	if req.Answer != "" {
		g, err = game.New(req.Answer, opts...)
	} else {
		g, err = game.NewFromSource(s.dict, s.game.MinWordLength, s.game.MaxWordLength, opts...)
	}
	if err != nil {
		if errors.Is(err, game.ErrInvalidWord) {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "no_word")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.recordGameStart(w, r, g.ID()); err != nil {
		log.Error().Err(err).Str("gameId", g.ID()).Msg("insert game row")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, viewOf(g, ""))
}

// recordGameStart inserts the history row that ties a game to its player.
// Guesses are only accepted for games with such a row.
func (s *Server) recordGameStart(w http.ResponseWriter, r *http.Request, gameID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		_, err := s.db.ExecContext(r.Context(),
			`INSERT INTO games (id, user_id, started_at, status) VALUES (?,?,?,?)`,
			gameID, me.ID, now, string(game.StatusPlaying))
		return err
	}
	anon := s.ensureAnonID(w, r)
	_, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, anonymous_id, started_at, status) VALUES (?,?,?,?)`,
		gameID, anon, now, string(game.StatusPlaying))
	return err
}

// ownsGame reports whether the requester started gameID through /game/new.
// Daily games have no history row and are only playable under /daily.
func (s *Server) ownsGame(r *http.Request, gameID string) bool {
	anon := ""
	if c, err := r.Cookie(anonCookieName); err == nil {
		anon = c.Value
	}
	userID := ""
	if me := userFrom(r); me != nil {
		userID = me.ID
	}
	if anon == "" && userID == "" {
		return false
	}

	var one int
	err := s.db.QueryRowContext(r.Context(),
		`SELECT 1 FROM games WHERE id=? AND ((user_id IS NOT NULL AND user_id=?) OR (anonymous_id IS NOT NULL AND anonymous_id=?))`,
		gameID, userID, anon).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Str("gameId", gameID).Msg("check game owner")
	}
	return err == nil
}

type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies a letter to a stored game, persists it and,
// once the game ends, updates history and user stats.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	if !s.ownsGame(r, req.GameID) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	g, outcome, ok := s.applyGuess(w, r, req.GameID, req.Letter)
	if !ok {
		return
	}
	if outcome != game.OutcomeRepeated {
		s.recordGuess(w, r, g)
	}
	writeJSON(w, http.StatusOK, viewOf(g, outcome))
}

// applyGuess runs load → Guess → save under the server lock and writes an
// error response when it fails.
func (s *Server) applyGuess(w http.ResponseWriter, r *http.Request, gameID, letter string) (*game.Game, game.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.Get(r.Context(), gameID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("gameId", gameID).Msg("load game")
		}
		writeError(w, http.StatusNotFound, "not_found")
		return nil, "", false
	}
	outcome, err := g.Guess(letter)
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
		return nil, "", false
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
		return nil, "", false
	case err != nil:
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return nil, "", false
	}
	if outcome != game.OutcomeRepeated {
		if err := s.store.Save(r.Context(), g); err != nil {
			log.Error().Err(err).Str("gameId", gameID).Msg("save game")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return nil, "", false
		}
	}
	return g, outcome, true
}

// recordGuess updates the history row (best effort, non-fatal).
func (s *Server) recordGuess(w http.ResponseWriter, r *http.Request, g *game.Game) {
	me := userFrom(r)
	var ownerClause, ownerArg string
	if me != nil {
		ownerClause, ownerArg = `user_id=?`, me.ID
	} else {
		ownerClause, ownerArg = `anonymous_id=?`, s.ensureAnonID(w, r)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1, wrong_guesses = ? WHERE id=? AND `+ownerClause,
		len(g.IncorrectGuesses()), g.ID(), ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	if status := g.Status(); status != game.StatusPlaying {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			string(status), time.Now().UTC().Format(time.RFC3339), g.ID(), ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
		log.Info().Str("gameId", g.ID()).Str("status", string(status)).Msg("game finished")
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit guess")
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g, ""))
}

// bumpStats increments games played; updates wins and streak (within tx).
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
