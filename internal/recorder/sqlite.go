package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TrendSentinel/internal/model"
)

// SQLiteRecorder persists report history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT,
			symbol         TEXT NOT NULL,
			as_of          INTEGER NOT NULL,
			recorded_at    INTEGER NOT NULL,
			bars           INTEGER,
			close          REAL,
			signal         TEXT NOT NULL,
			score          REAL,
			confidence     INTEGER,
			trend          TEXT,
			trend_strength TEXT,
			rsi            REAL,
			macd_histogram REAL,
			crossover      TEXT,
			percent_b      REAL,
			band_position  TEXT,
			interpretation TEXT,
			report_json    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_asof ON report_snapshots(symbol, as_of)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run ON report_snapshots(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReport(snap *ReportSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.RecordedAt.IsZero() {
		snap.RecordedAt = r.now().UTC()
	}
	res, err := r.db.Exec(`INSERT INTO report_snapshots
		(run_id, symbol, as_of, recorded_at, bars, close, signal, score, confidence,
		 trend, trend_strength, rsi, macd_histogram, crossover, percent_b, band_position,
		 interpretation, report_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.RunID, snap.Symbol, snap.AsOf.UnixMilli(), snap.RecordedAt.Unix(), snap.Bars, snap.Close,
		string(snap.Signal), snap.Score, snap.Confidence,
		string(snap.Trend), string(snap.TrendStrength), snap.RSI, snap.MACDHistogram,
		string(snap.Crossover), snap.PercentB, string(snap.BandPosition),
		snap.Interpretation, snap.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.Symbol, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = id
	}
	return nil
}

func (r *SQLiteRecorder) ListReports(symbol string, limit int) ([]ReportSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := r.db.Query(`SELECT id, run_id, symbol, as_of, recorded_at, bars, close, signal,
			score, confidence, trend, trend_strength, rsi, macd_histogram, crossover,
			percent_b, band_position, interpretation, report_json
		FROM report_snapshots
		WHERE (? = '' OR symbol = ?)
		ORDER BY as_of DESC, id DESC
		LIMIT ?`, symbol, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []ReportSnapshot
	for rows.Next() {
		var (
			s                       ReportSnapshot
			asOf, recordedAt        int64
			signal, trend, strength string
			crossover, position     string
			score, rsi, hist, pctB  sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.RunID, &s.Symbol, &asOf, &recordedAt, &s.Bars, &s.Close, &signal,
			&score, &s.Confidence, &trend, &strength, &rsi, &hist, &crossover,
			&pctB, &position, &s.Interpretation, &s.ReportJSON); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.AsOf = time.UnixMilli(asOf).UTC()
		s.RecordedAt = time.Unix(recordedAt, 0).UTC()
		s.Signal = model.CompositeSignal(signal)
		s.Trend = model.Trend(trend)
		s.TrendStrength = model.TrendStrength(strength)
		s.Crossover = model.Crossover(crossover)
		s.BandPosition = model.BandPosition(position)
		s.Score = nullable(score)
		s.RSI = nullable(rsi)
		s.MACDHistogram = nullable(hist)
		s.PercentB = nullable(pctB)
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.Float(v.Float64)
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
