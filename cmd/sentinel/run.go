package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TrendSentinel/internal/metrics"
)

func newRunCmd(load configLoader) *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduled watchlist analysis and the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log.Info().Msg("TrendSentinel starting")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if cfg.Metrics.Addr != "" {
				srv := metrics.Serve(cfg.Metrics.Addr)
				defer func() {
					shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
					defer done()
					_ = srv.Shutdown(shutdownCtx)
				}()
				log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint listening")
			}

			if err := a.sched.RegisterAll(cfg.Schedule.AnalysisCron); err != nil {
				return err
			}
			a.sched.Start()
			defer a.sched.Stop()

			if a.telegram != nil {
				go a.telegram.StartPolling(ctx, a.sched.HandleCommand)
				log.Info().Msg("telegram polling started")
			}

			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("running watchlist analysis on start")
				go a.sched.RunNow()
			}

			log.Info().Str("cron", cfg.Schedule.AnalysisCron).Msg("TrendSentinel is running, press Ctrl+C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Info().Msg("shutdown signal received, stopping")
			cancel()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "now", false, "analyze the watchlist immediately instead of waiting for the schedule")
	return cmd
}
