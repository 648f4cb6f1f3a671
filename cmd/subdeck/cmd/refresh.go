package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/output"
)

func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the search index from the record source",
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

			if err := svc.ForceRefresh(cmd.Context()); err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			stats := svc.Stats()
			out.Successf("Index rebuilt: %d entries", stats.TotalItems)
			return nil
		},
	}
	return cmd
}
