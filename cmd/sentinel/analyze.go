package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"TrendSentinel/internal/notifier"
)

var htmlTag = regexp.MustCompile(`</?[a-z]+>`)

func newAnalyzeCmd(load configLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "analyze <symbol>",
		Short:   "Analyze one symbol and print the report",
		Example: "  sentinel analyze SPX500\n  sentinel analyze AAPL --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			report, series, err := a.sched.AnalyzeSymbol(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			// The formatter targets Telegram HTML; strip it for the terminal.
			text := html.UnescapeString(htmlTag.ReplaceAllString(notifier.FormatReport(report, series), ""))
			_, err = fmt.Fprintln(out, text)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
