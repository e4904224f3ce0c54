package scheduler

import (
	"context"
	"fmt"
	"html"
	"strings"

	"TrendSentinel/internal/notifier"
)

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Group chats address commands as /cmd@BotName.
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch cmd {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		report, series, err := s.AnalyzeSymbol(ctx, fields[1])
		if err != nil {
			return fmt.Sprintf("❌ %s: %s", html.EscapeString(strings.ToUpper(fields[1])), html.EscapeString(err.Error()))
		}
		return notifier.FormatReport(report, series)
	case "/watchlist":
		res, err := s.AnalyzeWatchlist(ctx)
		if err != nil {
			return fmt.Sprintf("❌ Watchlist analysis failed: %s", html.EscapeString(err.Error()))
		}
		return notifier.FormatWatchlistDigest(s.now(), res.Reports, res.Failures)
	default:
		return notifier.FormatHelp()
	}
}
