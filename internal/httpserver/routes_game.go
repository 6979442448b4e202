// internal/httpserver/routes_game.go
//
// Game endpoints (optional auth):
//   - POST /game/new          → start a random or daily game
//   - POST /game/guess        → submit a guess
//   - GET  /game/{id}         → current state
//   - POST /game/{id}/score   → save a won game to the leaderboard
//
// Target words are only included in responses once the game is over.
// Games started by a signed-in player belong to that player; other callers
// get 404 for them. When such a game ends, the player's stats are bumped.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/sedecordle/internal/daily"
	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
	"github.com/robalobadob/sedecordle/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Post("/game/{id}/score", s.handleScore)
}

// boardView is one board as seen by the client.
type boardView struct {
	Index    int        `json:"index"`
	Solved   bool       `json:"solved"`
	SolvedAt int        `json:"solvedAt,omitempty"` // 1-based guess number
	Rows     []game.Row `json:"rows"`
	Target   string     `json:"target,omitempty"`
}

// gameView is the JSON state of a game.
type gameView struct {
	GameID         string                               `json:"gameId"`
	Mode           string                               `json:"mode"`
	Date           string                               `json:"date,omitempty"`
	State          game.Status                          `json:"state"`
	Guesses        []string                             `json:"guesses"`
	GuessesLeft    int                                  `json:"guessesLeft"`
	SolvedCount    int                                  `json:"solvedCount"`
	Boards         []boardView                          `json:"boards"`
	Keyboard       map[string]game.LetterStatus         `json:"keyboard"`
	KeyboardBoards map[string]map[int]game.LetterStatus `json:"keyboardBoards"`
	ElapsedSeconds int                                  `json:"elapsedSeconds"`
	Message        string                               `json:"message,omitempty"`
}

// viewOf snapshots g; the caller holds the game lock.
func viewOf(g *game.Game) gameView {
	v := gameView{
		GameID:         g.ID,
		Mode:           g.Mode,
		Date:           g.Date,
		State:          g.Status,
		Guesses:        append([]string{}, g.Guesses...),
		GuessesLeft:    game.MaxGuesses - len(g.Guesses),
		SolvedCount:    g.SolvedCount(),
		Boards:         make([]boardView, len(g.Targets)),
		Keyboard:       make(map[string]game.LetterStatus, len(g.Keys.Letters)),
		KeyboardBoards: make(map[string]map[int]game.LetterStatus, len(g.Keys.Boards)),
		ElapsedSeconds: g.ElapsedSeconds(),
		Message:        g.Message(),
	}
	for b := range g.Targets {
		bv := boardView{Index: b, Solved: g.IsSolved(b), SolvedAt: g.SolvedAt[b], Rows: g.Rows(b)}
		if g.Status.Terminal() {
			bv.Target = g.Targets[b]
		}
		v.Boards[b] = bv
	}
	for l, st := range g.Keys.Letters {
		v.Keyboard[l] = st
	}
	for l, per := range g.Keys.Boards {
		cp := make(map[int]game.LetterStatus, len(per))
		for b, st := range per {
			cp[b] = st
		}
		v.KeyboardBoards[l] = cp
	}
	return v
}

// ownedBy reports whether the caller may touch g.
func ownedBy(g *game.Game, me *authUser) bool {
	return g.Owner == "" || (me != nil && me.ID == g.Owner)
}

// ------------------------------- new ---------------------------------------

type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

// handleNewGame creates a game and registers it in the session store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body → random

	var opts []game.Option
	if me := currentUser(r); me != nil {
		opts = append(opts, game.WithOwner(me.ID))
	}

	var (
		g   *game.Game
		err error
	)
	switch req.Mode {
	case "", "random":
		g, err = game.New(s.words, opts...)
	case "daily":
		now := s.now()
		var targets []string
		targets, err = daily.Targets(now, s.cfg.DailySalt, s.words.Answers(), game.NumBoards)
		if err == nil {
			g, err = game.NewWithTargets(targets, s.words, append(opts, game.WithDaily(daily.DateKey(now)))...)
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid_mode")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("mode", req.Mode).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", g.ID).Str("mode", g.Mode).Msg("game started")
	writeJSON(w, http.StatusCreated, viewOf(g))
}

// ------------------------------ guess --------------------------------------

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	gameView
	Marks       [][]game.LetterStatus `json:"marks"` // per board; null for boards solved earlier
	NewlySolved []int                 `json:"newlySolved"`
}

// handleGuess applies a guess under the game's lock and, if the game just
// ended for a signed-in player, records the result on their account.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	me := currentUser(r)

	var (
		res   guessRes
		owner string
	)
	err := s.games.With(r.Context(), req.GameID, func(g *game.Game) error {
		if !ownedBy(g, me) {
			return store.ErrNotFound
		}
		out, err := g.Submit(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{gameView: viewOf(g), Marks: out.Marks, NewlySolved: out.NewlySolved}
		if res.NewlySolved == nil {
			res.NewlySolved = []int{}
		}
		owner = g.Owner
		return nil
	})
	if err != nil {
		s.writeGameError(w, err)
		return
	}

	if res.State.Terminal() && owner != "" {
		if err := s.users.RecordResult(r.Context(), owner, res.State == game.StatusWon); err != nil {
			log.Warn().Err(err).Str("user", owner).Msg("record result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------- get ---------------------------------------

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	var v gameView
	err := s.games.With(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		if !ownedBy(g, me) {
			return store.ErrNotFound
		}
		v = viewOf(g)
		return nil
	})
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ------------------------------ score --------------------------------------

// errAlreadyScored rejects a second submission for the same game.
var errAlreadyScored = errors.New("game already scored")

type scoreReq struct {
	PlayerName string `json:"playerName"`
}

// handleScore saves a won game to the leaderboard and ends the session.
// Signed-in players may omit the name; their username is used.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	var sc leaderboard.Score
	err := s.games.With(r.Context(), id, func(g *game.Game) error {
		if !ownedBy(g, me) {
			return store.ErrNotFound
		}
		name := req.PlayerName
		if name == "" && me != nil {
			name = me.Username
		}
		if g.Scored {
			return errAlreadyScored
		}
		var err error
		if sc, err = leaderboard.FromGame(g, name); err != nil {
			return err
		}
		g.Scored = true
		return nil
	})
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if me != nil {
		sc.UserID = me.ID
	}

	scoreID, err := s.scores.Save(r.Context(), sc)
	if err != nil {
		// release the claim so the player can retry
		_ = s.games.With(r.Context(), id, func(g *game.Game) error {
			g.Scored = false
			return nil
		})
		s.writeGameError(w, err)
		return
	}
	// the game lock is released; Delete takes the map lock
	_ = s.games.Delete(r.Context(), id)

	log.Info().Str("gameId", id).Str("player", sc.PlayerName).Int("attempts", sc.Attempts).
		Int("seconds", sc.TimeSeconds).Msg("score saved")
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          scoreID,
		"playerName":  sc.PlayerName,
		"attempts":    sc.Attempts,
		"timeSeconds": sc.TimeSeconds,
		"time":        leaderboard.FormatTime(sc.TimeSeconds),
	})
}

// writeGameError maps engine, store and leaderboard errors to JSON responses.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
	case errors.Is(err, game.ErrNotInWordList):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, errAlreadyScored):
		writeError(w, http.StatusConflict, "already_scored")
	case errors.Is(err, leaderboard.ErrNotWon):
		writeError(w, http.StatusConflict, "game_not_won")
	case errors.Is(err, leaderboard.ErrInvalidScore):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_score", "message": err.Error()})
	case errors.Is(err, leaderboard.ErrSave):
		log.Error().Err(err).Msg("leaderboard save")
		writeError(w, http.StatusServiceUnavailable, "save_failed")
	default:
		log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
