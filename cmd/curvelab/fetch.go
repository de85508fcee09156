package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/meenmo/curvelab/config"
	"github.com/meenmo/curvelab/marketdata/fred"
	"github.com/meenmo/curvelab/marketdata/store"
)

func newFetchCmd(cfgPath *string) *cobra.Command {
	var daemon bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download FRED Treasury yields into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if daemon {
				return runFetchDaemon(cmd.Context(), cfg)
			}
			return runFetch(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&daemon, "daemon", false, "keep running and refresh on the configured cron schedule")
	return cmd
}

func runFetch(ctx context.Context, cfg *config.Config) error {
	start, err := cfg.StartDate()
	if err != nil {
		return err
	}

	client := fred.NewClient(fred.Config{BaseURL: cfg.FRED.BaseURL, Start: start})
	history, err := client.FetchHistory(ctx)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveHistory(ctx, history); err != nil {
		return err
	}

	latest := history.Latest()
	log.Info().
		Str("latest", latest.Date().Format("2006-01-02")).
		Int("dates", len(history.Dates())).
		Msg("fetch complete")
	return nil
}

func runFetchDaemon(ctx context.Context, cfg *config.Config) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Schedule.FetchCron, func() {
		if err := runFetch(ctx, cfg); err != nil {
			log.Error().Err(err).Msg("scheduled fetch failed")
		}
	}); err != nil {
		return fmt.Errorf("register fetch schedule: %w", err)
	}

	// Refresh once at startup, then on schedule.
	if err := runFetch(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("initial fetch failed")
	}

	c.Start()
	defer c.Stop()
	log.Info().Str("cron", cfg.Schedule.FetchCron).Msg("fetch daemon running")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	}
	return nil
}
