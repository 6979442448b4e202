// internal/leaderboard/leaderboard.go
//
// Leaderboard records for completed games.
// Defines:
//   - Score: one completed-game record.
//   - Query: ranking order, time window and limit.
//   - Store: persistence interface (memory.go, sql.go).
//
// Failures of a Store wrap ErrSave or ErrLoad so the presentation layer can
// report them without touching game state.
package leaderboard

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/sedecordle/internal/game"
)

const (
	DefaultLimit  = 10
	MaxLimit      = 100
	MaxNameLength = 50
)

var (
	ErrSave         = errors.New("failed to save score")
	ErrLoad         = errors.New("failed to load scores")
	ErrInvalidScore = errors.New("invalid score")
	ErrNotWon       = errors.New("game not won")
)

// Score is one completed game on the leaderboard.
type Score struct {
	ID          string    `json:"id"`
	PlayerName  string    `json:"playerName"`
	UserID      string    `json:"userId,omitempty"`
	Mode        string    `json:"mode"`
	Attempts    int       `json:"attempts"`
	TimeSeconds int       `json:"timeSeconds"`
	CompletedAt time.Time `json:"completedAt"`
	TargetWords []string  `json:"targetWords"`
	SolveOrder  []int     `json:"solveOrder,omitempty"`
}

// FromGame builds a Score for a won game.
func FromGame(g *game.Game, playerName string) (Score, error) {
	if g.Status != game.StatusWon {
		return Score{}, ErrNotWon
	}
	s := Score{
		PlayerName:  strings.TrimSpace(playerName),
		Mode:        g.Mode,
		Attempts:    len(g.Guesses),
		TimeSeconds: g.ElapsedSeconds(),
		CompletedAt: g.EndedAt,
		TargetWords: append([]string(nil), g.Targets...),
		SolveOrder:  g.SolveOrder(),
	}
	return s, s.Validate()
}

// Validate checks the shape of a record. It does not try to prove the game
// was actually played.
func (s Score) Validate() error {
	name := strings.TrimSpace(s.PlayerName)
	switch {
	case name == "":
		return fmt.Errorf("%w: player name required", ErrInvalidScore)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: player name longer than %d", ErrInvalidScore, MaxNameLength)
	case s.Attempts < 1 || s.Attempts > game.MaxGuesses:
		return fmt.Errorf("%w: attempts %d out of range", ErrInvalidScore, s.Attempts)
	case s.TimeSeconds < 0:
		return fmt.Errorf("%w: negative time", ErrInvalidScore)
	case s.CompletedAt.IsZero():
		return fmt.Errorf("%w: missing completion time", ErrInvalidScore)
	case len(s.TargetWords) != game.NumBoards:
		return fmt.Errorf("%w: %d target words", ErrInvalidScore, len(s.TargetWords))
	}
	return nil
}

// By selects the ranking order.
type By string

const (
	ByAttempts By = "attempts" // fewest guesses, then fastest
	BySpeed    By = "speed"    // fastest, then fewest guesses
)

// ParseBy maps query strings to By; "" means ByAttempts.
func ParseBy(s string) (By, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attempts", "guesses":
		return ByAttempts, nil
	case "speed", "time":
		return BySpeed, nil
	}
	return "", fmt.Errorf("unknown ranking %q", s)
}

// Period is a leaderboard time window.
type Period string

const (
	Today   Period = "today"
	Week    Period = "week"
	Month   Period = "month"
	Year    Period = "year"
	Overall Period = "overall"
)

// ParsePeriod maps query strings to Period; "" means Overall.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Overall, nil
	case Today, Week, Month, Year, Overall:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Since returns the start of the window relative to now; zero for Overall.
// "today" starts at local midnight of now's location; the others are rolling.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Today:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Week:
		return now.AddDate(0, 0, -7)
	case Month:
		return now.AddDate(0, -1, 0)
	case Year:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// Query selects a ranked slice of the leaderboard.
type Query struct {
	By     By
	Period Period
	Limit  int       // clamped to [1, MaxLimit]; 0 means DefaultLimit
	Now    time.Time // reference time for Period; zero means time.Now()
}

func (q Query) normalized() Query {
	if q.By == "" {
		q.By = ByAttempts
	}
	if q.Period == "" {
		q.Period = Overall
	}
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	if q.Now.IsZero() {
		q.Now = time.Now()
	}
	return q
}

// compare orders scores for q.By; ties fall back to the earlier completion.
func compare(by By) func(a, b Score) int {
	return func(a, b Score) int {
		var c int
		if by == BySpeed {
			c = cmp.Or(cmp.Compare(a.TimeSeconds, b.TimeSeconds), cmp.Compare(a.Attempts, b.Attempts))
		} else {
			c = cmp.Or(cmp.Compare(a.Attempts, b.Attempts), cmp.Compare(a.TimeSeconds, b.TimeSeconds))
		}
		if c != 0 {
			return c
		}
		return a.CompletedAt.Compare(b.CompletedAt)
	}
}

// Rank sorts scores in place for by.
func Rank(scores []Score, by By) {
	slices.SortStableFunc(scores, compare(by))
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
