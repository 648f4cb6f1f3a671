package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/output"
)

func newSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Show typeahead suggestions for a prefix",
		Long: `Show indexed keywords starting with the prefix and entity names
containing it. The prefix must be at least two characters.

Examples:
  subdeck suggest net
  subdeck suggest spo --limit 10`,
		Args: cobra.ExactArgs(1),
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

			suggestions := svc.Suggestions(cmd.Context(), args[0], limit)
			output.New(cmd.OutOrStdout()).RenderSuggestions(suggestions)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of suggestions")
	return cmd
}
