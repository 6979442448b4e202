// Package tui is the terminal client: one player, one game at a time,
// rendered with Bubble Tea.
//
// Keys: letters type into the shared guess, backspace deletes, enter submits,
// ctrl+n starts a new game, esc or ctrl+c quits. After a win the player is
// asked for a name and the score is saved to the leaderboard store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
)

type phase int

const (
	phasePlaying phase = iota // includes a finished, lost game
	phaseNaming               // won, waiting for a leaderboard name
	phaseSaved                // won and saved (or skipped)
)

// NewGameFunc starts a fresh game.
type NewGameFunc func() (*game.Game, error)

type tickMsg time.Time

// savedMsg reports a leaderboard save for the game gameID.
type savedMsg struct {
	gameID string
	name   string
	id     string
	err    error
}

// Model is the Bubble Tea model for one terminal session.
type Model struct {
	newGame NewGameFunc
	scores  leaderboard.Store
	styles  Styles

	game      *game.Game
	phase     phase
	nameInput textinput.Model
	message   string
	isError   bool
	saving    bool

	width, height int
}

// New starts the first game. scores may be nil, in which case wins are not
// recorded.
func New(newGame NewGameFunc, scores leaderboard.Store) (Model, error) {
	g, err := newGame()
	if err != nil {
		return Model{}, err
	}
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLength
	ti.Width = leaderboard.MaxNameLength
	return Model{newGame: newGame, scores: scores, styles: DefaultStyles(), game: g, nameInput: ti}, nil
}

// Game exposes the current game.
func (m Model) Game() *game.Game { return m.game }

func (m Model) Init() tea.Cmd { return tick() }

// tick refreshes the timer once a second.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		return m, tick()

	case savedMsg:
		if msg.gameID != m.game.ID {
			// result for a game the player already left
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Could not save score: %v", msg.err))
			return m, nil
		}
		m.phase = phaseSaved
		m.nameInput.Blur()
		m.setMessage(fmt.Sprintf("Score saved for %s. Press ctrl+n for a new game.", msg.name))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.phase == phaseNaming && msg.Type == tea.KeyEsc {
				m.phase = phaseSaved
				m.nameInput.Blur()
				m.setMessage("Score not saved. Press ctrl+n for a new game.")
				return m, nil
			}
			return m, tea.Quit
		case tea.KeyCtrlN:
			return m.restart()
		}
		if m.phase == phaseNaming {
			return m.updateName(msg)
		}
		return m.updateGame(msg)
	}
	return m, nil
}

// updateGame handles guess input.
func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.game.AddLetter(r)
		}
	case tea.KeyBackspace:
		m.game.Backspace()
	case tea.KeyEnter:
		if m.game.Status.Terminal() {
			return m.restart()
		}
		m.submit()
	}
	return m, nil
}

func (m *Model) submit() {
	res, err := m.game.SubmitCurrent()
	switch {
	case errors.Is(err, game.ErrInvalidGuess):
		m.setError("Not enough letters")
		return
	case errors.Is(err, game.ErrNotInWordList):
		m.setError("Not in word list")
		return
	case err != nil:
		m.setError(err.Error())
		return
	}

	switch res.Status {
	case game.StatusWon:
		if m.scores != nil {
			m.phase = phaseNaming
			m.nameInput.Focus()
			m.setMessage(m.game.Message() + " Enter a name for the leaderboard.")
		} else {
			m.phase = phaseSaved
			m.setMessage(m.game.Message())
		}
	case game.StatusLost:
		m.setMessage(m.game.Message() + " Press enter to play again.")
	default:
		switch n := len(res.NewlySolved); {
		case n == 1:
			m.setMessage(fmt.Sprintf("Solved board %d!", res.NewlySolved[0]+1))
		case n > 1:
			m.setMessage(fmt.Sprintf("Solved %d boards!", n))
		default:
			m.setMessage("")
		}
	}
}

// updateName edits the leaderboard name and submits it on enter.
func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	if m.saving {
		return m, nil
	}
	sc, err := leaderboard.FromGame(m.game, m.playerName())
	if err != nil {
		m.setError(fmt.Sprintf("Enter a name (1–%d characters)", leaderboard.MaxNameLength))
		return m, nil
	}
	m.saving = true
	m.setMessage("Saving…")
	return m, saveCmd(m.scores, m.game.ID, sc)
}

func (m Model) playerName() string { return strings.TrimSpace(m.nameInput.Value()) }

// saveCmd writes the score off the update loop.
func saveCmd(st leaderboard.Store, gameID string, sc leaderboard.Score) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		id, err := st.Save(ctx, sc)
		return savedMsg{gameID: gameID, name: sc.PlayerName, id: id, err: err}
	}
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	g, err := m.newGame()
	if err != nil {
		m.setError(fmt.Sprintf("Could not start a new game: %v", err))
		return m, nil
	}
	m.game = g
	m.phase = phasePlaying
	m.nameInput.Reset()
	m.nameInput.Blur()
	m.saving = false
	m.setMessage("")
	return m, nil
}

func (m *Model) setMessage(s string) { m.message, m.isError = s, false }
func (m *Model) setError(s string)   { m.message, m.isError = s, true }
