package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TrendSentinel/internal/model"
)

// VsTraderFetcher reads daily bars from a vstrader REST endpoint.
type VsTraderFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewVsTraderFetcher creates a new fetcher with optional proxy support.
func NewVsTraderFetcher(baseURL, apiKey, proxyURL string) *VsTraderFetcher {
	return &VsTraderFetcher{BaseURL: baseURL, APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

func (f *VsTraderFetcher) Name() string { return "vstrader" }

// vsBar is one row of the bars endpoint; timestamps are unix seconds.
type vsBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchDailyBars returns up to days bars in the order the API sends them;
// the collector sorts.
func (f *VsTraderFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	q := url.Values{"symbol": {symbol}, "limit": {strconv.Itoa(days)}}
	u := fmt.Sprintf("%s/api/v1/bars/daily?%s", f.BaseURL, q.Encode())

	header := http.Header{}
	if f.APIKey != "" {
		header.Set("Authorization", "Bearer "+f.APIKey)
	}

	var rows []vsBar
	if err := getJSON(ctx, f.Client, "vstrader", u, header, &rows); err != nil {
		return nil, err
	}

	bars := make([]model.OHLCV, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, model.OHLCV{
			Time: time.Unix(r.Timestamp, 0).UTC(),
			Open: r.Open, High: r.High, Low: r.Low, Close: r.Close,
			Volume: r.Volume,
		})
	}
	return bars, nil
}
