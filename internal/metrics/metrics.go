// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"TrendSentinel/internal/model"
)

var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trendsentinel_analyses_total", Help: "Completed analyses by composite signal"},
		[]string{"signal"},
	)
	AnalysisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trendsentinel_analysis_errors_total", Help: "Failures by pipeline stage"},
		[]string{"stage"},
	)
	IndicatorUnavailableTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trendsentinel_indicator_unavailable_total", Help: "Indicator families skipped for short history"},
		[]string{"indicator"},
	)
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trendsentinel_analysis_duration_seconds",
		Help:    "Wall time of one watchlist or single-symbol analysis",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trendsentinel_cache_hits_total", Help: "Report cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trendsentinel_cache_misses_total", Help: "Report cache misses",
	})
)

func init() {
	prometheus.MustRegister(AnalysesTotal, AnalysisErrorsTotal, IndicatorUnavailableTotal,
		AnalysisDuration, CacheHits, CacheMisses)
}

// Stages labelling AnalysisErrorsTotal.
const (
	StageFetch    = "fetch"
	StageValidate = "validate"
	StageRecord   = "record"
	StageNotify   = "notify"
	StageCache    = "cache"
)

// ObserveReport counts a finished report and its unavailable families.
func ObserveReport(r *model.Report) {
	AnalysesTotal.WithLabelValues(string(r.Composite.Signal)).Inc()
	for _, f := range r.UnavailableFamilies() {
		IndicatorUnavailableTotal.WithLabelValues(string(f)).Inc()
	}
}

// ObserveError counts a failure at the given stage.
func ObserveError(stage string) {
	AnalysisErrorsTotal.WithLabelValues(stage).Inc()
}

// Since records the duration elapsed since start.
func Since(start time.Time) {
	AnalysisDuration.Observe(time.Since(start).Seconds())
}

// Serve starts the /metrics endpoint in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server")
		}
	}()
	return srv
}
