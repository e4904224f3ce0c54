package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const telegramAPI = "https://api.telegram.org"

// TelegramNotifier talks to the Telegram Bot API: outgoing HTML messages
// and the long-poll command loop.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	Client   *http.Client
	// APIBase is the Bot API root; tests point it at a local server.
	APIBase string
	// Backoff is the first retry delay of SendWithRetry, doubled per attempt.
	Backoff time.Duration
	// PollTimeout is the server-side wait of one getUpdates call.
	PollTimeout time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken:    botToken,
		ChatID:      chatID,
		Client:      &http.Client{Timeout: 30 * time.Second, Transport: transport},
		APIBase:     telegramAPI,
		Backoff:     time.Second,
		PollTimeout: 30 * time.Second,
	}
}

// APIError is a failed Bot API call.
type APIError struct {
	Method      string
	Status      int
	Description string
	// RetryAfter is set when Telegram asks the client to slow down.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: status %d: %s", e.Method, e.Status, e.Description)
}

// Temporary reports whether repeating the call may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, method)
}

// call posts params as JSON to a Bot API method and decodes the result
// into out when out is non-nil.
func (t *TelegramNotifier) call(ctx context.Context, client *http.Client, method string, params, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal %s params: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var env apiEnvelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode != http.StatusOK || (decodeErr == nil && !env.OK) {
		apiErr := &APIError{Method: method, Status: resp.StatusCode, Description: string(bytes.TrimSpace(raw))}
		if decodeErr == nil {
			apiErr.Description = env.Description
			if env.Parameters != nil && env.Parameters.RetryAfter > 0 {
				apiErr.RetryAfter = time.Duration(env.Parameters.RetryAfter) * time.Second
			}
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s response: %w", method, decodeErr)
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

type sendMessageParams struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	return t.call(ctx, t.Client, "sendMessage", sendMessageParams{
		ChatID:                t.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}, nil)
}

// SendWithRetry sends a message, retrying transient failures with
// exponential backoff. Rejections such as a bad chat id fail at once.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return err
		}
		if i == maxRetries {
			break
		}
		wait := t.Backoff << uint(i)
		if apiErr != nil && apiErr.RetryAfter > wait {
			wait = apiErr.RetryAfter
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("of", maxRetries+1).Dur("backoff", wait).Msg("telegram send failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}
