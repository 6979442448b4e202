package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/sedecordle/internal/game"
)

var _ game.WordSource = (*List)(nil)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestNewListNormalizes(t *testing.T) {
	l := NewList([]string{" crane", "SPEED", "toolong", "ab1de", "crane"}, []string{"adieu", "xy"})
	assert.Equal(t, []string{"CRANE", "SPEED"}, l.Answers())
	assert.True(t, l.IsAnswer("crane"))
	assert.False(t, l.IsAnswer("ADIEU"))
	assert.True(t, l.IsValidGuess("adieu"))
	assert.True(t, l.IsValidGuess("SPEED"), "answers are always valid guesses")
	assert.False(t, l.IsValidGuess("XY"))

	a, g := l.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)
}

func TestPickAnswersDistinct(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		got, err := l.PickAnswers(game.NumBoards)
		require.NoError(t, err)
		require.Len(t, got, game.NumBoards)
		seen := map[string]bool{}
		for _, w := range got {
			assert.False(t, seen[w], "duplicate answer %s", w)
			assert.True(t, l.IsAnswer(w))
			seen[w] = true
		}
	}
}

func TestPickAnswersNotEnough(t *testing.T) {
	l := NewList([]string{"CRANE", "SPEED"}, nil)
	_, err := l.PickAnswers(3)
	assert.ErrorIs(t, err, ErrNotEnoughAnswers)

	got, err := l.PickAnswers(2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CRANE", "SPEED"}, got)
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)
	a, g := l.Stats()
	assert.GreaterOrEqual(t, a, game.NumBoards)
	assert.Greater(t, g, a)
	assert.True(t, l.IsValidGuess("crane"))
	assert.True(t, l.IsValidGuess("ADIEU"))
	assert.False(t, l.IsAnswer("ADIEU"))
}

func TestLoadFromFiles(t *testing.T) {
	ans := writeFile(t, "answers.txt", "crane\nspeed\n\n")
	allowed := writeFile(t, "allowed.txt", "adieu\nslate\n")

	l, err := Load(ans, allowed)
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SPEED"}, l.Answers())
	assert.True(t, l.IsValidGuess("SLATE"))

	// allowed only: used for both
	l, err = Load("", allowed)
	require.NoError(t, err)
	assert.Equal(t, []string{"ADIEU", "SLATE"}, l.Answers())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), allowed)
	assert.Error(t, err)

	empty := writeFile(t, "empty.txt", "x\n")
	_, err = Load(empty, allowed)
	assert.Error(t, err)
}
