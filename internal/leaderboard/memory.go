package leaderboard

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists completed-game records and returns ranked slices of them.
type Store interface {
	// Save validates and stores s, returning its id.
	Save(ctx context.Context, s Score) (string, error)

	// Top returns at most q.Limit scores ranked by q.By inside q.Period.
	Top(ctx context.Context, q Query) ([]Score, error)
}

// memory keeps scores in a slice; used by tests and the offline terminal
// client when no database is configured.
type memory struct {
	mu     sync.RWMutex
	scores []Score
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Save(ctx context.Context, s Score) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.PlayerName = strings.TrimSpace(s.PlayerName)
	s.Mode = modeOrDefault(s.Mode)
	s.TargetWords = append([]string(nil), s.TargetWords...)
	s.SolveOrder = append([]int(nil), s.SolveOrder...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, s)
	return s.ID, nil
}

func (m *memory) Top(ctx context.Context, q Query) ([]Score, error) {
	q = q.normalized()
	since := q.Period.Since(q.Now)

	m.mu.RLock()
	out := make([]Score, 0, len(m.scores))
	for _, s := range m.scores {
		if !since.IsZero() && s.CompletedAt.Before(since) {
			continue
		}
		out = append(out, s)
	}
	m.mu.RUnlock()

	Rank(out, q.By)
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
