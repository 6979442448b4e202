// Command sedecordle runs the 16-board word puzzle.
//
//	sedecordle serve     HTTP API (games, leaderboard, accounts)
//	sedecordle play      terminal client
//	sedecordle scores    print the leaderboard
//
// Configuration comes from defaults, an optional YAML file (--config), a
// .env file and the environment, in increasing order of precedence.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/sedecordle/internal/config"
	"github.com/robalobadob/sedecordle/internal/daily"
	"github.com/robalobadob/sedecordle/internal/game"
	"github.com/robalobadob/sedecordle/internal/words"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "sedecordle",
	Short:         "16-board word puzzle: server, terminal client and leaderboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, playCmd, scoresCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sedecordle:", err)
		os.Exit(1)
	}
}

// setupLogging applies the configured level and output format to the global logger.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadWords reads the configured word lists, falling back to the embedded ones.
func loadWords() (*words.List, error) {
	wl, err := words.Load(cfg.Words.AnswersFile, cfg.Words.AllowedFile)
	if err != nil {
		return nil, err
	}
	a, g := wl.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")
	return wl, nil
}

// newGame starts a random game, or today's daily game when isDaily is set.
func newGame(wl *words.List, isDaily bool) (*game.Game, error) {
	if !isDaily {
		return game.New(wl)
	}
	now := time.Now()
	targets, err := daily.Targets(now, cfg.DailySalt, wl.Answers(), game.NumBoards)
	if err != nil {
		return nil, err
	}
	return game.NewWithTargets(targets, wl, game.WithDaily(daily.DateKey(now)))
}
