package cmd

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/output"
)

func newStatsCmd() *cobra.Command {
	var format string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long: `Show the indexed entry count, last rebuild time, and per-entity-type
breakdown. Reading stats never rebuilds the index; pass --refresh to
rebuild first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, src, err := newService(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()
			defer func() { _ = svc.Close() }()

			if refresh {
				if err := svc.ForceRefresh(cmd.Context()); err != nil {
					return err
				}
			}

			stats := svc.Stats()
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			output.New(cmd.OutOrStdout()).RenderStats(stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rebuild the index before reporting")
	return cmd
}
