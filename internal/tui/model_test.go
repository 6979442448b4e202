package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
	"github.com/robalobadob/sedecordle/internal/words"
)

var targets = []string{
	"CRANE", "SPEED", "GHOST", "LEMON", "APPLE", "THREE", "BLOCK", "DRIVE",
	"FAITH", "HUMAN", "JUDGE", "KNIFE", "MOUSE", "OCEAN", "PILOT", "WATER",
}

// failingStore rejects every save.
type failingStore struct{ leaderboard.Store }

func (failingStore) Save(context.Context, leaderboard.Score) (string, error) {
	return "", fmt.Errorf("%w: disk full", leaderboard.ErrSave)
}

func newModel(t *testing.T, scores leaderboard.Store) Model {
	t.Helper()
	wl := words.NewList(targets, []string{"ZESTY"})
	m, err := New(func() (*game.Game, error) { return game.NewWithTargets(targets, wl) }, scores)
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func guess(t *testing.T, m Model, w string) Model {
	t.Helper()
	m, _ = press(t, m, runes(w), enter)
	return m
}

func TestTypingAndBackspace(t *testing.T) {
	m := newModel(t, nil)
	m, _ = press(t, m, runes("cr"), runes("a"), backspace, runes("1"))
	assert.Equal(t, "CR", m.Game().Current)

	m, _ = press(t, m, enter)
	assert.Equal(t, "Not enough letters", m.message)
	assert.True(t, m.isError)
	assert.Equal(t, "CR", m.Game().Current, "buffer kept on rejection")

	m, _ = press(t, m, runes("xyzq"), enter)
	assert.Equal(t, "CRXYZ", m.Game().Current, "input stops at five letters")
	assert.Equal(t, "Not in word list", m.message)
	assert.Empty(t, m.Game().Guesses)
}

func TestSolveBoardUpdatesView(t *testing.T) {
	m := newModel(t, nil)
	m = guess(t, m, "crane")
	assert.Equal(t, "Solved board 1!", m.message)
	assert.Empty(t, m.Game().Current)

	v := m.View()
	assert.Contains(t, v, "Solved 1/16")
	assert.Contains(t, v, "Guesses 1/21")
	assert.Contains(t, v, "CRANE")
}

func TestLossAndRestart(t *testing.T) {
	m := newModel(t, leaderboard.NewMemoryStore())
	for i := 0; i < game.MaxGuesses; i++ {
		m = guess(t, m, "ZESTY")
	}
	require.Equal(t, game.StatusLost, m.Game().Status)
	assert.Contains(t, m.message, "Game Over! You solved 0/16 boards.")
	assert.Contains(t, m.View(), "WATER", "answers revealed after a loss")

	m, _ = press(t, m, runes("ab"))
	assert.Empty(t, m.Game().Current, "input ignored once over")

	old := m.Game()
	m, _ = press(t, m, enter)
	assert.NotSame(t, old, m.Game())
	assert.Equal(t, game.StatusPlaying, m.Game().Status)
	assert.Equal(t, phasePlaying, m.phase)
}

func win(t *testing.T, m Model) Model {
	t.Helper()
	for _, w := range targets {
		m = guess(t, m, w)
	}
	require.Equal(t, game.StatusWon, m.Game().Status)
	return m
}

func TestWinSavesScore(t *testing.T) {
	scores := leaderboard.NewMemoryStore()
	m := win(t, newModel(t, scores))
	require.Equal(t, phaseNaming, m.phase)
	assert.True(t, strings.HasPrefix(m.message, "Congratulations! You solved all 16 boards in 16 guesses!"))

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.True(t, m.isError, "empty name rejected")

	m, _ = press(t, m, runes("Ad"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, runes("L"), backspace, runes("a"))
	assert.Equal(t, "Ad a", m.playerName())
	assert.Contains(t, m.View(), "Name: Ad a")

	m, cmd = press(t, m, enter)
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, phaseSaved, m.phase)
	assert.Contains(t, m.message, "Score saved for Ad a")

	top, err := scores.Top(context.Background(), leaderboard.Query{})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Ad a", top[0].PlayerName)
	assert.Equal(t, 16, top[0].Attempts)
}

func TestSaveFailureKeepsGame(t *testing.T) {
	m := win(t, newModel(t, failingStore{}))
	m, cmd := press(t, m, runes("Ada"), enter)
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())

	assert.True(t, m.isError)
	assert.Contains(t, m.message, "Could not save score")
	assert.Equal(t, phaseNaming, m.phase, "player may retry")
	assert.Equal(t, game.StatusWon, m.Game().Status)
	assert.Len(t, m.Game().Guesses, 16)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, phaseSaved, m.phase, "esc skips saving")
}

func TestQuitAndNewGame(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m = guess(t, m, "CRANE")
	old := m.Game()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.NotSame(t, old, m.Game())
	assert.Empty(t, m.Game().Guesses)
	assert.Empty(t, m.message)
}

func TestSaveResultAfterNewGameIgnored(t *testing.T) {
	scores := leaderboard.NewMemoryStore()
	m := win(t, newModel(t, scores))
	m, save := press(t, m, runes("Ada"), enter)
	require.NotNil(t, save)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	fresh := m.Game()
	m, _ = press(t, m, save())

	assert.Same(t, fresh, m.Game())
	assert.Equal(t, phasePlaying, m.phase)
	assert.Equal(t, game.StatusPlaying, m.Game().Status)
	assert.Empty(t, m.message)

	top, err := scores.Top(context.Background(), leaderboard.Query{})
	require.NoError(t, err)
	assert.Len(t, top, 1, "the finished game's score is still stored")
}

func TestWinWithoutStore(t *testing.T) {
	m := win(t, newModel(t, nil))
	assert.Equal(t, phaseSaved, m.phase)
	assert.Equal(t, "Congratulations! You solved all 16 boards in 16 guesses!", m.message)
}
