package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/analysis"
	"TrendSentinel/internal/model"
)

func risingSeries() *model.PriceSeries {
	t0 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 30)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = model.OHLCV{Time: t0.AddDate(0, 0, i), Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func TestFormatReport(t *testing.T) {
	series := risingSeries()
	rep, err := analysis.NewDefault().Analyze(series)
	require.NoError(t, err)

	msg := FormatReport(rep, series)
	assert.Contains(t, msg, "📊 <b>TEST</b> | 2025-01-31 | 30 bars")
	assert.Contains(t, msg, "🟢 <b>BUY</b> (score +0.56, confidence 67%)")
	assert.Contains(t, msg, "<b>Trend</b>: UPTREND (STRONG, gap 5.04%)")
	assert.Contains(t, msg, "SMA50 N/A")
	assert.Contains(t, msg, "<b>MACD</b>: N/A (MACD(12,26,9): need 35 bars, have 30)")
	assert.Contains(t, msg, "<b>Range 20d</b>: 109.50 to 129.50")
	assert.Contains(t, msg, "trend: +1.00 ×0.40 = +0.400")
	assert.Contains(t, msg, "⚠️ RSI 100.0 is at or above 85")
	assert.False(t, strings.HasSuffix(msg, "\n"))

	// Without a series the range line is dropped.
	assert.NotContains(t, FormatReport(rep, nil), "Range")
}

func TestFormatReport_InsufficientAndEscaping(t *testing.T) {
	rep := &model.Report{
		Symbol: "<X>",
		Bars:   3,
		Composite: model.CompositeResult{
			Availability:   model.Unavailable("no data"),
			Signal:         model.SignalInsufficientData,
			Interpretation: "a < b",
		},
		MACD: model.MACDResult{Availability: model.Unavailable("")},
	}
	msg := FormatReport(rep, nil)
	assert.Contains(t, msg, "&lt;X&gt;")
	assert.Contains(t, msg, "<i>a &lt; b</i>")
	assert.Contains(t, msg, "❔ <b>INSUFFICIENT DATA</b>\n")
	assert.Contains(t, msg, "<b>MACD</b>: N/A\n")
	assert.NotContains(t, msg, "score")
}

func TestFormatWatchlistDigest(t *testing.T) {
	at := time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC)
	reports := []*model.Report{
		{Symbol: "SPY", Composite: model.CompositeResult{Score: model.Float(-0.25), Signal: model.SignalSell, Confidence: 75}},
		{Symbol: "NEW", Composite: model.CompositeResult{Signal: model.SignalInsufficientData}},
	}
	failures := map[string]error{"ZZZ": errors.New("timeout"), "AAA": errors.New("404")}

	msg := FormatWatchlistDigest(at, reports, failures)
	assert.Contains(t, msg, "2025-06-02 22:30")
	assert.Contains(t, msg, "<b>SPY</b> 🔴 <b>SELL</b> (score -0.25, confidence 75%)")
	assert.Contains(t, msg, "<b>NEW</b> ❔ <b>INSUFFICIENT DATA</b>")
	assert.Less(t, strings.Index(msg, "AAA: 404"), strings.Index(msg, "ZZZ: timeout"))

	assert.Contains(t, FormatWatchlistDigest(at, nil, nil), "Watchlist is empty.")
}

func TestSignedAndNum(t *testing.T) {
	assert.Equal(t, "+0.56", signed(0.5630952, 2))
	assert.Equal(t, "-0.28", signed(-0.275, 2))
	assert.Equal(t, "0.00", signed(0, 2))
	assert.Equal(t, "N/A", num(nil, 2))
	assert.Equal(t, "119.50", num(model.Float(119.5), 2))
}

func testNotifier(url string) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = url
	n.Backoff = time.Millisecond
	n.PollTimeout = time.Second
	return n
}

const okResult = `{"ok":true,"result":{}}`

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "42", payload["chat_id"])
		assert.Equal(t, "hello", payload["text"])
		assert.Equal(t, "HTML", payload["parse_mode"])
		assert.Equal(t, true, payload["disable_web_page_preview"])
		_, _ = w.Write([]byte(okResult))
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).Send(context.Background(), "hello"))
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`))
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).Send(context.Background(), "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "Too Many Requests", apiErr.Description)
	assert.Equal(t, 3*time.Second, apiErr.RetryAfter)
	assert.True(t, apiErr.Temporary())
}

func TestSendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(okResult))
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).SendWithRetry(context.Background(), "x", 3))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).SendWithRetry(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Contains(t, err.Error(), "status 500")
}

func TestSendWithRetry_PermanentErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).SendWithRetry(context.Background(), "x", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestStartPolling(t *testing.T) {
	var polls atomic.Int32
	replies := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			var params getUpdatesParams
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			if polls.Add(1) == 1 {
				assert.Equal(t, 0, params.Offset)
				assert.Equal(t, []string{"message"}, params.AllowedUpdates)
				_, _ = w.Write([]byte(`{"ok":true,"result":[` +
					`{"update_id":6,"message":{"text":"/help","chat":{"id":99}}},` +
					`{"update_id":7,"message":{"text":" /help ","chat":{"id":42}}}]}`))
				return
			}
			assert.Equal(t, 8, params.Offset)
			time.Sleep(10 * time.Millisecond)
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			replies <- payload["text"].(string)
			_, _ = w.Write([]byte(okResult))
		}
	}))
	defer srv.Close()

	var handled atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		testNotifier(srv.URL).StartPolling(ctx, func(_ context.Context, cmd string) string {
			handled.Add(1)
			if cmd == "/help" {
				return FormatHelp()
			}
			return ""
		})
		close(done)
	}()

	select {
	case reply := <-replies:
		assert.Contains(t, reply, "/analyze SYMBOL")
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
	assert.Equal(t, int32(1), handled.Load(), "only the configured chat is served")
}
