// internal/httpserver/routes_leaderboard.go
//
// GET /leaderboard?by=attempts|speed&period=today|week|month|year|overall&limit=N
//
// limit defaults to 10 and must be within 1–100.
package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/sedecordle/internal/leaderboard"
)

// lbRow is one ranked leaderboard entry.
type lbRow struct {
	Rank int `json:"rank"`
	leaderboard.Score
	Time string `json:"time"` // m:ss
}

type lbRes struct {
	By     leaderboard.By     `json:"by"`
	Period leaderboard.Period `json:"period"`
	Top    []lbRow            `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	by, err := leaderboard.ParseBy(q.Get("by"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_by")
		return
	}
	period, err := leaderboard.ParsePeriod(q.Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_period")
		return
	}
	limit := leaderboard.DefaultLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > leaderboard.MaxLimit {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}

	top, err := s.scores.Top(r.Context(), leaderboard.Query{By: by, Period: period, Limit: limit, Now: s.now()})
	if err != nil {
		log.Error().Err(err).Msg("leaderboard load")
		code := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrLoad) {
			code = http.StatusServiceUnavailable
		}
		writeError(w, code, "load_failed")
		return
	}

	rows := make([]lbRow, len(top))
	for i, sc := range top {
		rows[i] = lbRow{Rank: i + 1, Score: sc, Time: leaderboard.FormatTime(sc.TimeSeconds)}
	}
	writeJSON(w, http.StatusOK, lbRes{By: by, Period: period, Top: rows})
}
