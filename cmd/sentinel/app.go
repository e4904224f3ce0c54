package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/analysis"
	"TrendSentinel/internal/cache"
	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/config"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/scheduler"
)

type configLoader func() (*config.Config, error)

// app owns the long-lived resources built from config.
type app struct {
	sched    *scheduler.Scheduler
	telegram *notifier.TelegramNotifier
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("close resource")
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	analyzer, err := analysis.New(cfg.Analysis.Indicators, cfg.Analysis.Scoring)
	if err != nil {
		return nil, fmt.Errorf("init analyzer: %w", err)
	}

	a := &app{}
	deps := scheduler.Deps{
		Collector: collector.NewCollector(fetcher, cfg.DataSource.LookbackDays),
		Analyzer:  analyzer,
		Cache:     cache.NoopCache{},
		Recorder:  recorder.NewNoopRecorder(),
		Watchlist: cfg.Watchlist,
		Workers:   cfg.Analysis.Workers,
	}

	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("init redis cache failed, caching disabled")
		} else {
			deps.Cache = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			deps.Recorder = sr
			a.closers = append(a.closers, sr.Close)
		}
	}

	if cfg.Telegram.Enabled {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		deps.Notifier = a.telegram
	}

	a.sched = scheduler.NewScheduler(ctx, deps)
	return a, nil
}
