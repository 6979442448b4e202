package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width UTC so that completed_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ Store = (*SQLStore)(nil)

// SQLStore keeps scores in the scores table (assets/migrations/002_scores.sql).
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Save inserts s; database failures wrap ErrSave.
func (s *SQLStore) Save(ctx context.Context, sc Score) (string, error) {
	if err := sc.Validate(); err != nil {
		return "", err
	}
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	var userID any
	if sc.UserID != "" {
		userID = sc.UserID
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO scores
            (id, player_name, user_id, mode, attempts, time_seconds, completed_at, target_words, solve_order)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, strings.TrimSpace(sc.PlayerName), userID, modeOrDefault(sc.Mode),
		sc.Attempts, sc.TimeSeconds, sc.CompletedAt.UTC().Format(timeLayout),
		strings.Join(sc.TargetWords, ","), joinInts(sc.SolveOrder),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}
	return sc.ID, nil
}

// Top returns ranked scores; database failures wrap ErrLoad.
func (s *SQLStore) Top(ctx context.Context, q Query) ([]Score, error) {
	q = q.normalized()

	// overall: every stored timestamp compares >= ""
	since := ""
	if t := q.Period.Since(q.Now); !t.IsZero() {
		since = t.UTC().Format(timeLayout)
	}
	order := "attempts ASC, time_seconds ASC"
	if q.By == BySpeed {
		order = "time_seconds ASC, attempts ASC"
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, player_name, COALESCE(user_id, ''), mode, attempts, time_seconds,
               completed_at, target_words, solve_order
        FROM scores
        WHERE completed_at >= ?
        ORDER BY `+order+`, completed_at ASC
        LIMIT ?`, since, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer rows.Close()

	out := make([]Score, 0, q.Limit)
	for rows.Next() {
		var sc Score
		var completed, targets, solved string
		if err := rows.Scan(&sc.ID, &sc.PlayerName, &sc.UserID, &sc.Mode, &sc.Attempts,
			&sc.TimeSeconds, &completed, &targets, &solved); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		if sc.CompletedAt, err = time.Parse(timeLayout, completed); err != nil {
			return nil, fmt.Errorf("%w: completed_at %q: %w", ErrLoad, completed, err)
		}
		if targets != "" {
			sc.TargetWords = strings.Split(targets, ",")
		}
		sc.SolveOrder = splitInts(solved)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return out, nil
}

func modeOrDefault(m string) string {
	if m == "" {
		return "random"
	}
	return m
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// splitInts ignores malformed entries.
func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, p := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
