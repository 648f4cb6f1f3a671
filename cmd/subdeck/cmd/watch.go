package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/output"
	"github.com/nzemmouri/subdeck/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the index fresh until interrupted",
		Long: `Host the search service in the foreground. The index is rebuilt on the
configured interval, and additionally whenever the record source changes
on disk. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := slog.Default()
			svc, src, err := newService(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()
			defer func() { _ = svc.Close() }()

			if err := svc.ForceRefresh(cmd.Context()); err != nil {
				return err
			}

			w := watcher.New(cfg.Source.Path, 0, logger)
			if err := w.Start(cmd.Context()); err != nil {
				return err
			}
			defer w.Stop()

			out := output.New(cmd.OutOrStdout())
			out.Successf("Watching %s (refresh every %s)", cfg.Source.Path, cfg.Search.RefreshInterval)

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					out.Status("", "Stopping.")
					return nil
				case <-w.Changes():
					if err := svc.ForceRefresh(ctx); err != nil {
						logger.Error("refresh_after_change_failed", slog.String("error", err.Error()))
						continue
					}
					stats := svc.Stats()
					out.Statusf("🔄", "Source changed, index rebuilt: %d entries", stats.TotalItems)
				}
			}
		},
	}
	return cmd
}
