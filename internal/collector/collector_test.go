package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/model"
)

var end = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func TestCollect_MockSeries(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100, End: end}, 120)
	series, err := c.Collect(context.Background(), " spy ")
	require.NoError(t, err)

	assert.Equal(t, "SPY", series.Symbol)
	require.Equal(t, 120, series.Len())
	assert.Equal(t, end, series.Last().Time)
	for i := 1; i < series.Len(); i++ {
		assert.True(t, series.Bars[i].Time.After(series.Bars[i-1].Time))
	}
	assert.False(t, series.FetchedAt.IsZero())
}

func TestCollect_DropsEmptyBarsAndSorts(t *testing.T) {
	data := []model.OHLCV{
		{Time: end, Open: 3, High: 3, Low: 3, Close: 3},
		{Time: end.AddDate(0, 0, -2), Open: 1, High: 1, Low: 1, Close: 1},
		{Time: end.AddDate(0, 0, -1)},
	}
	c := &Collector{Fetcher: &MockFetcher{DailyData: data}, Lookback: 3}
	series, err := c.Collect(context.Background(), "X")
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 1.0, series.Bars[0].Close)
	assert.Equal(t, 3.0, series.Bars[1].Close)
}

func TestCollect_WrapsFetchError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector(&MockFetcher{Err: boom}, 10)
	_, err := c.Collect(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "X from mock")

	_, err = c.Collect(context.Background(), "  ")
	assert.Error(t, err)
}

func TestVsTraderFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"timestamp": 1700086400, "open": 2, "high": 3, "low": 1, "close": 2.5, "volume": 10},
			{"timestamp": 1700000000, "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 20}
		]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "key", "")
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 2.5, bars[0].Close, "fetcher keeps API order")

	series, err := NewCollector(f, 5).Collect(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, 1.5, series.Bars[0].Close)
	assert.Equal(t, 2.5, series.Bars[1].Close)
}

func TestVsTraderFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewVsTraderFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "AAPL", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "vstrader", httpErr.Source)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestYahooFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/^GSPC", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1700000000, 1700086400, 1700172800, 1700259200],
			"indicators": {"quote": [{
				"open":   [1, null, 3, 4],
				"high":   [1, null, 3, 4],
				"low":    [1, null, 3, 4],
				"close":  [1, null, 3, 4],
				"volume": [10, null, 30, 40]
			}]}
		}], "error": null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "SPX500", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 3.0, bars[0].Close)
	assert.Equal(t, 4.0, bars[1].Close)
	assert.Equal(t, 40.0, bars[1].Volume)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "NOPE", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher("yahoo", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "yahoo", f.Name())

	f, err = NewFetcher("vstrader", "http://vs", "", "http://proxy:8080")
	require.NoError(t, err)
	assert.Equal(t, "vstrader", f.Name())

	f, err = NewFetcher("mock", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "mock", f.Name())

	_, err = NewFetcher("vstrader", "", "", "")
	assert.Error(t, err)
	_, err = NewFetcher("bloomberg", "", "", "")
	assert.Error(t, err)
}
