package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robalobadob/sedecordle/assets"
	"github.com/robalobadob/sedecordle/internal/database"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
)

var (
	scoresBy     string
	scoresPeriod string
	scoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the leaderboard",
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&scoresBy, "by", "attempts", "ranking: attempts or speed")
	scoresCmd.Flags().StringVar(&scoresPeriod, "period", "overall", "today, week, month, year or overall")
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", leaderboard.DefaultLimit, "number of rows (1-100)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	by, err := leaderboard.ParseBy(scoresBy)
	if err != nil {
		return err
	}
	period, err := leaderboard.ParsePeriod(scoresPeriod)
	if err != nil {
		return err
	}
	if scoresLimit < 1 || scoresLimit > leaderboard.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", leaderboard.MaxLimit)
	}

	db, err := database.OpenAndMigrate(cmd.Context(), cfg.DB.Driver, cfg.DB.Path, assets.Migrations())
	if err != nil {
		return err
	}
	defer db.Close()

	top, err := leaderboard.NewSQLStore(db).Top(cmd.Context(), leaderboard.Query{By: by, Period: period, Limit: scoresLimit})
	if err != nil {
		return err
	}
	printScores(cmd.OutOrStdout(), by, period, top)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	firstStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6aaa64"))
)

// printScores writes a ranked table.
func printScores(w io.Writer, by leaderboard.By, period leaderboard.Period, top []leaderboard.Score) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Leaderboard (%s, %s)", by, period)))
	if len(top) == 0 {
		fmt.Fprintln(w, "no scores yet")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%4s  %-24s %8s %6s  %-7s %s", "#", "Player", "Guesses", "Time", "Mode", "Completed")))
	for i, s := range top {
		line := fmt.Sprintf("%4d  %-24s %8d %6s  %-7s %s", i+1, s.PlayerName, s.Attempts,
			leaderboard.FormatTime(s.TimeSeconds), s.Mode, humanize.Time(s.CompletedAt))
		if i == 0 {
			line = firstStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
