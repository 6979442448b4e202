package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/sedecordle/internal/game"
)

// Tile colors follow the usual word-game palette.
var (
	ColorCorrect = lipgloss.Color("#6aaa64")
	ColorPresent = lipgloss.Color("#c9b458")
	ColorAbsent  = lipgloss.Color("#3a3a3c")
	ColorUnused  = lipgloss.Color("#818384")
	ColorText    = lipgloss.Color("#ffffff")
	ColorError   = lipgloss.Color("#e53935")
)

// Styles holds every style used by the view.
type Styles struct {
	Title       lipgloss.Style
	Stats       lipgloss.Style
	Message     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Board       lipgloss.Style
	BoardSolved lipgloss.Style
	Tile        lipgloss.Style
}

// DefaultStyles returns the dark palette.
func DefaultStyles() Styles {
	board := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAbsent).
		Padding(0, 1)
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(ColorCorrect),
		Stats:       lipgloss.NewStyle().Foreground(ColorUnused),
		Message:     lipgloss.NewStyle().Bold(true),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		Help:        lipgloss.NewStyle().Faint(true),
		Board:       board,
		BoardSolved: board.BorderForeground(ColorCorrect),
		Tile:        lipgloss.NewStyle().Bold(true).Foreground(ColorText),
	}
}

// tile renders one letter with the background of its status.
func (s Styles) tile(letter string, st game.LetterStatus) string {
	bg := ColorUnused
	switch st {
	case game.StatusCorrect:
		bg = ColorCorrect
	case game.StatusPresent:
		bg = ColorPresent
	case game.StatusAbsent:
		bg = ColorAbsent
	}
	return s.Tile.Background(bg).Render(letter)
}
