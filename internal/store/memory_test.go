package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/sedecordle/internal/game"
)

var targets = []string{
	"CRANE", "SPEED", "GHOST", "LEMON", "APPLE", "THREE", "BLOCK", "DRIVE",
	"FAITH", "HUMAN", "JUDGE", "KNIFE", "MOUSE", "OCEAN", "PILOT", "WATER",
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewWithTargets(targets, nil)
	require.NoError(t, err)
	return g
}

func TestSaveAndWith(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)
	require.NoError(t, s.Save(ctx, g))

	err := s.With(ctx, g.ID, func(got *game.Game) error {
		assert.Same(t, g, got)
		_, err := got.Submit("CRANE")
		return err
	})
	require.NoError(t, err)
	assert.Len(t, g.Guesses, 1)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.With(ctx, g.ID, func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, s.With(ctx, "nope", func(*game.Game) error { return nil }), ErrNotFound)

	require.NoError(t, s.Delete(ctx, g.ID))
	assert.ErrorIs(t, s.With(ctx, g.ID, func(*game.Game) error { return nil }), ErrNotFound)
}

func TestWithSerializesPerGame(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)
	require.NoError(t, s.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(ctx, g.ID, func(g *game.Game) error {
				_, err := g.Submit("ZZZZZ")
				return err
			})
		}()
	}
	wg.Wait()
	assert.Len(t, g.Guesses, game.MaxGuesses)
	assert.Equal(t, game.StatusLost, g.Status)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	m := &memory{games: map[string]*entry{}, now: func() time.Time { return now }}

	old := newGame(t)
	require.NoError(t, m.Save(ctx, old))
	now = now.Add(2 * time.Hour)
	fresh := newGame(t)
	require.NoError(t, m.Save(ctx, fresh))

	assert.Equal(t, 1, m.Prune(ctx, now.Add(-time.Hour)))
	assert.ErrorIs(t, m.With(ctx, old.ID, func(*game.Game) error { return nil }), ErrNotFound)
	assert.NoError(t, m.With(ctx, fresh.ID, func(*game.Game) error { return nil }))
}
