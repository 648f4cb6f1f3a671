package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/output"
	"github.com/nzemmouri/subdeck/internal/source"
)

// seedFile is the fixture document format: one JSON object holding all
// four collections.
type seedFile struct {
	Suppliers []model.Supplier       `json:"suppliers"`
	Products  []model.Product        `json:"products"`
	Sales     []model.Sale           `json:"sales"`
	Movements []model.CreditMovement `json:"credit_movements"`
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <fixture.json>",
		Short: "Load a JSON fixture into the record source",
		Long: `Replace the record source's collections with the contents of a JSON
fixture file. Intended for demos and local development; the search core
itself never writes to the source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read fixture: %w", err)
			}
			var fixture seedFile
			if err := json.Unmarshal(data, &fixture); err != nil {
				return fmt.Errorf("parse fixture: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			src, err := openSource(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			writer, ok := src.(collectionWriter)
			if !ok {
				return fmt.Errorf("source backend %q does not support seeding", cfg.Source.Backend)
			}

			ctx := cmd.Context()
			for name, records := range map[string]any{
				source.CollectionSuppliers: fixture.Suppliers,
				source.CollectionProducts:  fixture.Products,
				source.CollectionSales:     fixture.Sales,
				source.CollectionMovements: fixture.Movements,
			} {
				if err := writer.WriteCollection(ctx, name, records); err != nil {
					return err
				}
			}

			out := output.New(cmd.OutOrStdout())
			out.Successf("Seeded %d suppliers, %d products, %d sales, %d movements",
				len(fixture.Suppliers), len(fixture.Products), len(fixture.Sales), len(fixture.Movements))
			return nil
		},
	}
	return cmd
}
