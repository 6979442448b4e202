package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/sedecordle/assets"
	"github.com/robalobadob/sedecordle/internal/database"
	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
	"github.com/robalobadob/sedecordle/internal/tui"
)

var (
	playDaily  bool
	playNoSave bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "play today's daily boards")
	playCmd.Flags().BoolVar(&playNoSave, "no-db", false, "keep scores in memory instead of the database")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// the terminal belongs to the UI from here on
	log.Logger = log.Output(io.Discard)

	wl, err := loadWords()
	if err != nil {
		return err
	}

	scores := leaderboard.NewMemoryStore()
	if !playNoSave {
		db, err := database.OpenAndMigrate(cmd.Context(), cfg.DB.Driver, cfg.DB.Path, assets.Migrations())
		if err != nil {
			return err
		}
		defer db.Close()
		scores = leaderboard.NewSQLStore(db)
	}

	m, err := tui.New(func() (*game.Game, error) { return newGame(wl, playDaily) }, scores)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
