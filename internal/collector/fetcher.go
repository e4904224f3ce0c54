package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TrendSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

// NewFetcher builds the fetcher named by provider.
func NewFetcher(provider, baseURL, apiKey, proxyURL string) (Fetcher, error) {
	switch provider {
	case "yahoo", "":
		return NewYahooFetcher(proxyURL), nil
	case "vstrader":
		if baseURL == "" {
			return nil, fmt.Errorf("vstrader: base url is required")
		}
		return NewVsTraderFetcher(baseURL, apiKey, proxyURL), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	}
	return nil, fmt.Errorf("unknown data provider %q", provider)
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// HTTPError is a non-200 answer from a data provider.
type HTTPError struct {
	Source string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Source, e.Status, e.Body)
}

const maxErrorBody = 512

// getJSON performs a GET and decodes a 200 response into out.
func getJSON(ctx context.Context, client *http.Client, source, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", source, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{Source: source, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", source, err)
	}
	return nil
}
