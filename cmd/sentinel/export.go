package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TrendSentinel/internal/recorder"
)

func newExportCmd(load configLoader) *cobra.Command {
	var (
		symbol string
		out    string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export recorded report history to a Parquet file",
		Example: "  sentinel export --symbol SPX500 --out spx500.parquet\n  sentinel export --out all.parquet --limit 1000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Database.SQLitePath == "" {
				return fmt.Errorf("export needs database.sqlite_path to be set")
			}

			rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer rec.Close()

			snaps, err := rec.ListReports(strings.ToUpper(strings.TrimSpace(symbol)), limit)
			if err != nil {
				return err
			}
			if err := recorder.ExportParquet(out, snaps); err != nil {
				return err
			}
			log.Info().Str("out", out).Int("rows", len(snaps)).Msg("history exported")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d snapshots to %s\n", len(snaps), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "symbol to export (default all)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output Parquet file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum snapshots to export, newest first (0 = all)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
