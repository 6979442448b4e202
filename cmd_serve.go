package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/sedecordle/assets"
	"github.com/robalobadob/sedecordle/internal/database"
	"github.com/robalobadob/sedecordle/internal/httpserver"
	"github.com/robalobadob/sedecordle/internal/leaderboard"
	"github.com/robalobadob/sedecordle/internal/store"
	"github.com/robalobadob/sedecordle/internal/users"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wl, err := loadWords()
	if err != nil {
		return err
	}
	db, err := database.OpenAndMigrate(ctx, cfg.DB.Driver, cfg.DB.Path, assets.Migrations())
	if err != nil {
		return err
	}
	defer db.Close()

	games := store.NewMemoryStore()
	srv := httpserver.New(cfg, wl, games, leaderboard.NewSQLStore(db), users.NewStore(db))
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("db", cfg.DB.Path).Msg("starting sedecordle server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		pruneIdle(egCtx, games, time.Duration(cfg.Server.SessionTTL)*time.Minute)
		return nil
	})
	return eg.Wait()
}

// pruneIdle drops games nobody has touched for ttl until ctx is done.
func pruneIdle(ctx context.Context, games store.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := games.Prune(ctx, now.Add(-ttl)); n > 0 {
				log.Debug().Int("games", n).Msg("pruned idle games")
			}
		}
	}
}
