package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/analysis"
	"TrendSentinel/internal/cache"
	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
)

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Deps are the collaborators the scheduler drives.
type Deps struct {
	Collector *collector.Collector
	Analyzer  *analysis.Analyzer
	Cache     cache.ReportCache
	Recorder  recorder.Recorder
	Notifier  Sender // nil disables delivery
	Watchlist []string
	Workers   int
}

// Scheduler manages the cron tasks and bot commands.
type Scheduler struct {
	Cron *cron.Cron
	Deps
	Ctx context.Context

	now      func() time.Time
	newRunID func() string
}

// NewScheduler creates a new Scheduler. Missing cache and recorder default
// to their no-op implementations.
func NewScheduler(ctx context.Context, d Deps) *Scheduler {
	if d.Cache == nil {
		d.Cache = cache.NoopCache{}
	}
	if d.Recorder == nil {
		d.Recorder = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Deps:     d,
		Ctx:      ctx,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// RegisterAll registers the watchlist analysis task.
func (s *Scheduler) RegisterAll(analysisCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analyzeWatchlist); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Strs("watchlist", s.Watchlist).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the watchlist task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.analyzeWatchlist()
}

// RunResult is the outcome of one watchlist pass.
type RunResult struct {
	RunID    string
	Reports  []*model.Report // watchlist order, failed symbols omitted
	Series   map[string]*model.PriceSeries
	Failures map[string]error
}

// AnalyzeWatchlist collects every watchlist symbol, serves what it can from
// the cache, analyzes the rest on the worker pool and records every report
// under one run id.
func (s *Scheduler) AnalyzeWatchlist(ctx context.Context) (*RunResult, error) {
	start := s.now()
	defer metrics.Since(start)

	res := &RunResult{
		RunID:    s.newRunID(),
		Series:   make(map[string]*model.PriceSeries),
		Failures: make(map[string]error),
	}
	logger := log.With().Str("run_id", res.RunID).Logger()

	byIndex := make([]*model.Report, len(s.Watchlist))
	var (
		pending    []model.PriceSeries
		pendingIdx []int
		keys       = make(map[int]string)
	)
	for i, symbol := range s.Watchlist {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series, err := s.Collector.Collect(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("collect failed")
			metrics.ObserveError(metrics.StageFetch)
			res.Failures[symbol] = err
			continue
		}
		res.Series[series.Symbol] = series

		key := cache.Key(series, s.Analyzer.Params(), s.Analyzer.Scoring())
		keys[i] = key
		if cached, ok := s.lookup(ctx, key); ok {
			byIndex[i] = cached
			continue
		}
		pending = append(pending, *series)
		pendingIdx = append(pendingIdx, i)
	}

	results, err := s.Analyzer.AnalyzeBatch(ctx, pending, s.Workers)
	if err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}
	for j, r := range results {
		i := pendingIdx[j]
		if r.Err != nil {
			logger.Error().Err(r.Err).Str("symbol", r.Symbol).Msg("analysis failed")
			metrics.ObserveError(metrics.StageValidate)
			res.Failures[r.Symbol] = r.Err
			continue
		}
		byIndex[i] = r.Report
		if err := s.Cache.Set(ctx, keys[i], r.Report); err != nil {
			logger.Warn().Err(err).Str("symbol", r.Symbol).Msg("cache store failed")
			metrics.ObserveError(metrics.StageCache)
		}
	}

	for _, r := range byIndex {
		if r == nil {
			continue
		}
		res.Reports = append(res.Reports, r)
		metrics.ObserveReport(r)
		s.record(res.RunID, res.Series[r.Symbol], r)
		logger.Info().Str("symbol", r.Symbol).Str("signal", string(r.Composite.Signal)).
			Float64("score", model.Deref(r.Composite.Score)).Int("confidence", r.Composite.Confidence).
			Msg("analysis complete")
	}
	return res, nil
}

// AnalyzeSymbol runs the pipeline for one symbol outside the schedule.
func (s *Scheduler) AnalyzeSymbol(ctx context.Context, symbol string) (*model.Report, *model.PriceSeries, error) {
	start := s.now()
	defer metrics.Since(start)

	series, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		metrics.ObserveError(metrics.StageFetch)
		return nil, nil, err
	}
	key := cache.Key(series, s.Analyzer.Params(), s.Analyzer.Scoring())
	if cached, ok := s.lookup(ctx, key); ok {
		return cached, series, nil
	}

	report, err := s.Analyzer.Analyze(series)
	if err != nil {
		metrics.ObserveError(metrics.StageValidate)
		return nil, series, err
	}
	if err := s.Cache.Set(ctx, key, report); err != nil {
		log.Warn().Err(err).Str("symbol", series.Symbol).Msg("cache store failed")
		metrics.ObserveError(metrics.StageCache)
	}
	metrics.ObserveReport(report)
	s.record(s.newRunID(), series, report)
	return report, series, nil
}

func (s *Scheduler) lookup(ctx context.Context, key string) (*model.Report, bool) {
	cached, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		metrics.ObserveError(metrics.StageCache)
		return nil, false
	}
	if ok {
		metrics.CacheHits.Inc()
		return cached, true
	}
	metrics.CacheMisses.Inc()
	return nil, false
}

func (s *Scheduler) record(runID string, series *model.PriceSeries, r *model.Report) {
	snap, err := recorder.NewSnapshot(runID, series, r)
	if err == nil {
		err = s.Recorder.RecordReport(snap)
	}
	if err != nil {
		log.Error().Err(err).Str("symbol", r.Symbol).Msg("record report")
		metrics.ObserveError(metrics.StageRecord)
	}
}

func (s *Scheduler) analyzeWatchlist() {
	log.Info().Int("symbols", len(s.Watchlist)).Msg("running watchlist analysis")
	res, err := s.AnalyzeWatchlist(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("watchlist analysis")
		s.trySend(fmt.Sprintf("❌ Watchlist analysis failed: %v", err))
		return
	}
	s.trySend(notifier.FormatWatchlistDigest(s.now(), res.Reports, res.Failures))

	// Threshold alerts get the full report.
	for _, r := range res.Reports {
		if len(r.Warnings) > 0 {
			s.trySend(notifier.FormatReport(r, res.Series[r.Symbol]))
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Debug().Msg("notifier disabled, message dropped")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
		metrics.ObserveError(metrics.StageNotify)
	}
}
