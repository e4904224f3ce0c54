package recorder

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// SnapshotRow is the Parquet layout of a ReportSnapshot. The full report
// JSON is left out; the columns are what notebooks aggregate over.
type SnapshotRow struct {
	RunID         string   `parquet:"run_id"`
	Symbol        string   `parquet:"symbol"`
	AsOf          int64    `parquet:"as_of_ms"` // Unix milliseconds
	RecordedAt    int64    `parquet:"recorded_at"`
	Bars          int64    `parquet:"bars"`
	Close         float64  `parquet:"close"`
	Signal        string   `parquet:"signal"`
	Score         *float64 `parquet:"score"`
	Confidence    int64    `parquet:"confidence"`
	Trend         string   `parquet:"trend"`
	TrendStrength string   `parquet:"trend_strength"`
	RSI           *float64 `parquet:"rsi"`
	MACDHistogram *float64 `parquet:"macd_histogram"`
	Crossover     string   `parquet:"crossover"`
	PercentB      *float64 `parquet:"percent_b"`
	BandPosition  string   `parquet:"band_position"`
}

func toRow(s ReportSnapshot) SnapshotRow {
	return SnapshotRow{
		RunID:         s.RunID,
		Symbol:        s.Symbol,
		AsOf:          s.AsOf.UnixMilli(),
		RecordedAt:    s.RecordedAt.Unix(),
		Bars:          int64(s.Bars),
		Close:         s.Close,
		Signal:        string(s.Signal),
		Score:         s.Score,
		Confidence:    int64(s.Confidence),
		Trend:         string(s.Trend),
		TrendStrength: string(s.TrendStrength),
		RSI:           s.RSI,
		MACDHistogram: s.MACDHistogram,
		Crossover:     string(s.Crossover),
		PercentB:      s.PercentB,
		BandPosition:  string(s.BandPosition),
	}
}

// ExportParquet writes snapshots to a Parquet file at path.
func ExportParquet(path string, snaps []ReportSnapshot) error {
	rows := make([]SnapshotRow, len(snaps))
	for i, s := range snaps {
		rows[i] = toRow(s)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}
