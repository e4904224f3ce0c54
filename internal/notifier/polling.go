package notifier

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// CommandHandler is called when a user command is received. A non-empty
// return value is sent back as the reply.
type CommandHandler func(ctx context.Context, command string) string

type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type getUpdatesParams struct {
	Offset         int      `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

const pollRetryDelay = 5 * time.Second

// StartPolling long-polls getUpdates and answers commands from the
// configured chat. Messages from any other chat are ignored. Blocks until
// ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	client := &http.Client{Transport: t.Client.Transport, Timeout: t.PollTimeout + 5*time.Second}
	params := getUpdatesParams{
		Timeout:        int(t.PollTimeout / time.Second),
		AllowedUpdates: []string{"message"},
	}

	for ctx.Err() == nil {
		var updates []telegramUpdate
		if err := t.call(ctx, client, "getUpdates", params, &updates); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Warn().Err(err).Msg("telegram polling failed")
			sleep(ctx, pollRetryDelay)
			continue
		}

		for _, u := range updates {
			params.Offset = u.UpdateID + 1
			if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
				continue
			}
			chat := strconv.FormatInt(u.Message.Chat.ID, 10)
			if chat != t.ChatID {
				log.Warn().Str("chat", chat).Msg("ignoring command from unknown chat")
				continue
			}
			text := strings.TrimSpace(u.Message.Text)
			log.Info().Str("command", text).Msg("received command")
			if reply := handler(ctx, text); reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					log.Error().Err(err).Msg("send reply")
				}
			}
		}
	}
	log.Info().Msg("telegram polling stopped")
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
