package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTargets = []string{
	"CRANE", "SPEED", "GHOST", "LEMON",
	"APPLE", "THREE", "BLOCK", "DRIVE",
	"FAITH", "HUMAN", "JUDGE", "KNIFE",
	"MOUSE", "OCEAN", "PILOT", "WATER",
}

// fakeWords accepts every alphabetic word except those in reject.
type fakeWords struct {
	answers []string
	reject  map[string]bool
	err     error
}

func (f fakeWords) PickAnswers(n int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answers[:n], nil
}

func (f fakeWords) IsValidGuess(w string) bool { return !f.reject[w] }

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame(t *testing.T, opts ...Option) (*Game, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	src := fakeWords{answers: testTargets, reject: map[string]bool{"QWERT": true}}
	g, err := New(src, append([]Option{WithClock(c.now)}, opts...)...)
	require.NoError(t, err)
	return g, c
}

func TestNewGame(t *testing.T) {
	g, _ := newTestGame(t)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "random", g.Mode)
	assert.Equal(t, testTargets, g.Targets)
	assert.Equal(t, StatusPlaying, g.Status)
	assert.Empty(t, g.Guesses)
	assert.Zero(t, g.SolvedCount())
	assert.Zero(t, g.ElapsedSeconds())
	assert.Empty(t, g.Message())
}

func TestNewGameOptions(t *testing.T) {
	g, _ := newTestGame(t, WithID("fixed"), WithDaily("2026-10-19"))
	assert.Equal(t, "fixed", g.ID)
	assert.Equal(t, "daily", g.Mode)
	assert.Equal(t, "2026-10-19", g.Date)
}

func TestNewGameSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(fakeWords{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestNewWithTargetsValidates(t *testing.T) {
	_, err := NewWithTargets(testTargets[:15], nil)
	assert.ErrorIs(t, err, ErrBadTargets)

	bad := append([]string{}, testTargets...)
	bad[3] = "TOOLONG"
	_, err = NewWithTargets(bad, nil)
	assert.ErrorIs(t, err, ErrBadTargets)

	lower := append([]string{}, testTargets...)
	lower[0] = " crane "
	g, err := NewWithTargets(lower, nil)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", g.Targets[0])
}

func TestSubmitRejectsWithoutMutation(t *testing.T) {
	g, _ := newTestGame(t)
	cases := []struct {
		guess string
		err   error
	}{
		{"CRAN", ErrInvalidGuess},
		{"CRANES", ErrInvalidGuess},
		{"CR4NE", ErrInvalidGuess},
		{"", ErrInvalidGuess},
		{"qwert", ErrNotInWordList},
	}
	for _, tc := range cases {
		_, err := g.Submit(tc.guess)
		assert.ErrorIs(t, err, tc.err, tc.guess)
	}
	assert.Empty(t, g.Guesses)
	assert.Empty(t, g.Keys.Letters)
	assert.True(t, g.StartedAt.IsZero())
	assert.Equal(t, StatusPlaying, g.Status)
}

func TestSubmitScoresUnsolvedBoards(t *testing.T) {
	g, _ := newTestGame(t)

	res, err := g.Submit("crane")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", res.Guess)
	assert.Equal(t, []int{0}, res.NewlySolved)
	assert.Equal(t, []LetterStatus{C, C, C, C, C}, res.Marks[0])
	assert.Len(t, res.Marks, NumBoards)
	assert.Equal(t, StatusPlaying, res.Status)

	res, err = g.Submit("RANCH")
	require.NoError(t, err)
	assert.Nil(t, res.Marks[0], "solved board must not be scored again")
	assert.Equal(t, ScoreGuess("RANCH", "SPEED"), res.Marks[1])
	assert.Empty(t, res.NewlySolved)
	assert.Equal(t, []int{0}, g.Solved())
}

func TestSolvedSetMonotonic(t *testing.T) {
	g, _ := newTestGame(t)
	prev := 0
	for _, w := range []string{"GHOST", "ZZZZZ", "GHOST", "LEMON", "YYYYY", "WATER"} {
		_, err := g.Submit(w)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, g.SolvedCount(), prev)
		assert.LessOrEqual(t, g.SolvedCount(), NumBoards)
		prev = g.SolvedCount()
	}
	assert.Equal(t, []int{2, 3, 15}, g.Solved())
	assert.Equal(t, 1, g.SolvedAt[2], "repeat guess keeps the first solving row")
	assert.Equal(t, []int{2, 3, 15}, g.SolveOrder())
}

func TestWinAllBoards(t *testing.T) {
	g, c := newTestGame(t)
	for i, w := range testTargets {
		c.advance(3 * time.Second)
		res, err := g.Submit(w)
		require.NoError(t, err)
		if i < len(testTargets)-1 {
			assert.Equal(t, StatusPlaying, res.Status)
		}
	}
	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, NumBoards, g.SolvedCount())
	// clock started at the first guess, 15 more advances of 3s
	assert.Equal(t, 45, g.ElapsedSeconds())
	c.advance(time.Hour)
	assert.Equal(t, 45, g.ElapsedSeconds(), "clock stops at the end")
	assert.Equal(t, "Congratulations! You solved all 16 boards in 16 guesses!", g.Message())

	_, err := g.Submit("CRANE")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Len(t, g.Guesses, 16)
}

func TestLoseAfterMaxGuesses(t *testing.T) {
	g, _ := newTestGame(t)
	_, err := g.Submit("CRANE")
	require.NoError(t, err)
	for i := 1; i < MaxGuesses; i++ {
		assert.Equal(t, StatusPlaying, g.Status)
		_, err := g.Submit("ZZZZZ")
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, g.Status)
	assert.Len(t, g.Guesses, MaxGuesses)
	assert.Equal(t, "Game Over! You solved 1/16 boards.", g.Message())

	_, err = g.Submit("SPEED")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Len(t, g.Guesses, MaxGuesses)
	assert.Equal(t, 1, g.SolvedCount())
}

func TestWinOnLastGuess(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < MaxGuesses-NumBoards; i++ {
		_, err := g.Submit("ZZZZZ")
		require.NoError(t, err)
	}
	for _, w := range testTargets {
		_, err := g.Submit(w)
		require.NoError(t, err)
	}
	assert.Len(t, g.Guesses, MaxGuesses)
	assert.Equal(t, StatusWon, g.Status)
}

func TestInputBuffer(t *testing.T) {
	g, _ := newTestGame(t)
	for _, r := range "crane!" {
		g.AddLetter(r)
	}
	assert.Equal(t, "CRANE", g.Current)
	assert.False(t, g.AddLetter('X'), "buffer is full")
	assert.False(t, g.AddLetter('1'))

	assert.True(t, g.Backspace())
	assert.Equal(t, "CRAN", g.Current)

	_, err := g.SubmitCurrent()
	assert.ErrorIs(t, err, ErrInvalidGuess)
	assert.Equal(t, "CRAN", g.Current, "rejected guess keeps the buffer")

	g.AddLetter('E')
	_, err = g.SubmitCurrent()
	require.NoError(t, err)
	assert.Empty(t, g.Current)
	assert.False(t, g.Backspace())
}

func TestInputIgnoredWhenOver(t *testing.T) {
	g, _ := newTestGame(t)
	for _, w := range testTargets {
		_, err := g.Submit(w)
		require.NoError(t, err)
	}
	assert.False(t, g.AddLetter('A'))
	assert.Empty(t, g.Current)
}

func TestRowsStopAtSolvingGuess(t *testing.T) {
	g, _ := newTestGame(t)
	for _, w := range []string{"ZZZZZ", "CRANE", "SPEED"} {
		_, err := g.Submit(w)
		require.NoError(t, err)
	}
	rows := g.Rows(0)
	require.Len(t, rows, 2)
	assert.Equal(t, "CRANE", rows[1].Word)
	assert.Equal(t, []LetterStatus{C, C, C, C, C}, rows[1].Marks)
	assert.Len(t, g.Rows(5), 3)
}
