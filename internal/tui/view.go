package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
)

const gridColumns = 4

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("SEDECORDLE"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Stats.Render(m.statsLine()))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderBoards())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderKeyboard())
	sb.WriteString("\n\n")

	if m.message != "" {
		style := m.styles.Message
		if m.isError {
			style = m.styles.Error
		}
		sb.WriteString(style.Render(m.message))
		sb.WriteString("\n")
	}
	if m.phase == phaseNaming {
		sb.WriteString(m.nameInput.View())
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render("enter save • esc skip"))
	} else {
		sb.WriteString(m.styles.Help.Render("type to guess • enter submit • backspace delete • ctrl+n new game • esc quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// statsLine reports solved boards, guesses used and the timer.
func (m Model) statsLine() string {
	g := m.game
	return fmt.Sprintf("Solved %d/%d   Guesses %d/%d   Time %s",
		g.SolvedCount(), len(g.Targets), len(g.Guesses), game.MaxGuesses,
		leaderboard.FormatTime(g.ElapsedSeconds()))
}

// renderBoards lays the boards out in a 4×4 grid.
func (m Model) renderBoards() string {
	n := len(m.game.Targets)
	rows := make([]string, 0, (n+gridColumns-1)/gridColumns)
	for start := 0; start < n; start += gridColumns {
		cols := make([]string, 0, gridColumns)
		for b := start; b < start+gridColumns && b < n; b++ {
			cols = append(cols, m.renderBoard(b))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderBoard draws one board: its scored rows, then the input row while
// the board is open, or the answer once a lost game reveals it.
func (m Model) renderBoard(b int) string {
	g := m.game
	lines := []string{fmt.Sprintf("#%-2d", b+1)}
	for _, row := range g.Rows(b) {
		var sb strings.Builder
		for i, st := range row.Marks {
			sb.WriteString(m.styles.tile(row.Word[i:i+1], st))
		}
		lines = append(lines, sb.String())
	}

	style := m.styles.Board
	switch {
	case g.IsSolved(b):
		style = m.styles.BoardSolved
	case g.Status.Terminal():
		lines = append(lines, m.styles.Error.Render(g.Targets[b]))
	default:
		lines = append(lines, g.Current+strings.Repeat("_", game.WordLength-len(g.Current)))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderKeyboard colors each key by its best status across open boards.
func (m Model) renderKeyboard() string {
	rows := make([]string, len(keyboardRows))
	for i, r := range keyboardRows {
		keys := make([]string, len(r))
		for j := range r {
			l := r[j : j+1]
			keys[j] = m.styles.tile(l, m.game.Keys.Letter(l))
		}
		rows[i] = strings.Join(keys, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
