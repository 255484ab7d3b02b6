// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses a session)
//   - POST /daily/guess       → guess a letter in today's game
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same word per day; each player's result is stored once.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
)

type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

type dailySession struct {
	GameID    string
	WordIndex int
	Start     time.Time
	Finished  bool
}

func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// playerID returns the authenticated user ID or the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

type dailyNewRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"`
	*gameRes
}

// handleNew creates or reuses today's session.
// A player with a stored result for today gets Played=true and no game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	now := d.now()
	date := daily.DateKey(now)

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(date)

	if sess, ok := d.sessions[key]; ok {
		if g, err := d.srv.store.Get(r.Context(), sess.GameID); err == nil {
			view := viewOf(g, "")
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, gameRes: &view})
			return
		}
	}

	idx, word, ok := daily.Word(now, d.salt, d.srv.dict.Filter(d.srv.game.MinWordLength, d.srv.game.MaxWordLength))
	if !ok {
		writeError(w, http.StatusInternalServerError, "no_word")
		return
	}
	g, err := game.New(word, game.WithMaxAttempts(d.srv.game.MaxAttempts))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_word")
		return
	}
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = &dailySession{GameID: g.ID(), WordIndex: idx, Start: now}

	view := viewOf(g, "")
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, gameRes: &view})
}

// pruneLocked drops sessions from days other than date. d.mu must be held.
func (d *dailyServer) pruneLocked(date string) {
	for k := range d.sessions {
		if !strings.HasSuffix(k, "|"+date) {
			delete(d.sessions, k)
		}
	}
}

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies a letter to today's game and stores the result once
// the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	date := daily.DateKey(d.now())
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.GameID != p.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	g, outcome, ok := d.srv.applyGuess(w, r, p.GameID, p.Letter)
	if !ok {
		return
	}

	if status := g.Status(); status != game.StatusPlaying {
		d.mu.Lock()
		first := !sess.Finished
		sess.Finished = true
		d.mu.Unlock()
		if first {
			elapsed := int(d.now().Sub(sess.Start).Milliseconds())
			if err := d.store.InsertResult(r.Context(), daily.Result{
				UserID:       uid,
				Date:         date,
				WordIndex:    sess.WordIndex,
				WrongGuesses: len(g.IncorrectGuesses()),
				ElapsedMs:    elapsed,
			}); err != nil {
				log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
			}
		}
	}
	writeJSON(w, http.StatusOK, viewOf(g, outcome))
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
