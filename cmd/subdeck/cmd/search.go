package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/output"
	"github.com/nzemmouri/subdeck/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit           int
	offset          int
	types           []string
	supplier        string
	category        string
	status          string
	paymentStatus   string
	minAmount       float64
	maxAmount       float64
	from            string
	to              string
	sortBy          string
	sortOrder       string
	includeInactive bool
	noFuzzy         bool
	format          string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the indexed dataset",
		Long: `Search platforms, products, sales, and credit movements with ranked
full-text matching.

Examples:
  subdeck search "netflix"
  subdeck search "premium account" --type product --limit 5
  subdeck search "karim" --type sale --payment-status paid
  subdeck search "adjustment" --supplier p1 --sort date --order asc
  subdeck search "netflix" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of results per page")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Result offset for pagination")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "Restrict to entity types: platform, product, sale, credit_movement (repeatable)")
	cmd.Flags().StringVar(&opts.supplier, "supplier", "", "Restrict to one supplier platform by id")
	cmd.Flags().StringVar(&opts.category, "category", "", "Restrict products by category")
	cmd.Flags().StringVar(&opts.status, "status", "", "Restrict by status (sale payment status, or active/inactive for platforms)")
	cmd.Flags().StringVar(&opts.paymentStatus, "payment-status", "", "Restrict sales by payment status")
	cmd.Flags().Float64Var(&opts.minAmount, "min-amount", 0, "Minimum amount (type-specific amount field)")
	cmd.Flags().Float64Var(&opts.maxAmount, "max-amount", 0, "Maximum amount (type-specific amount field)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Earliest primary date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Latest primary date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "relevance", "Sort key: relevance, date, amount, name")
	cmd.Flags().StringVar(&opts.sortOrder, "order", "desc", "Sort order: asc, desc")
	cmd.Flags().BoolVar(&opts.includeInactive, "include-inactive", false, "Include inactive platforms and products")
	cmd.Flags().BoolVar(&opts.noFuzzy, "no-fuzzy", false, "Disable fuzzy (edit distance) matching")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	searchOpts, err := buildSearchOptions(cmd, query, opts)
	if err != nil {
		return err
	}

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

	resp := svc.Search(cmd.Context(), searchOpts)

	out := output.New(cmd.OutOrStdout())
	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	out.RenderResponse(resp)
	return nil
}

// buildSearchOptions converts CLI flags into search options.
func buildSearchOptions(cmd *cobra.Command, query string, opts searchOptions) (search.Options, error) {
	so := search.NewOptions(query)
	so.Limit = opts.limit
	so.Offset = opts.offset
	so.IncludeInactive = opts.includeInactive
	so.FuzzySearch = search.Bool(!opts.noFuzzy)

	for _, t := range opts.types {
		et := model.EntityType(t)
		if !et.Valid() {
			return search.Options{}, fmt.Errorf("unknown entity type %q (use platform, product, sale, credit_movement)", t)
		}
		so.Filters.EntityTypes = append(so.Filters.EntityTypes, et)
	}

	so.Filters.SupplierID = opts.supplier
	so.Filters.Category = opts.category
	so.Filters.Status = opts.status
	so.Filters.PaymentStatus = opts.paymentStatus
	so.Filters.SortBy = search.SortField(opts.sortBy)
	so.Filters.SortOrder = search.SortOrder(opts.sortOrder)

	if cmd.Flags().Changed("min-amount") {
		min := opts.minAmount
		so.Filters.MinAmount = &min
	}
	if cmd.Flags().Changed("max-amount") {
		max := opts.maxAmount
		so.Filters.MaxAmount = &max
	}

	if opts.from != "" || opts.to != "" {
		dr := &search.DateRange{}
		if opts.from != "" {
			start, err := time.Parse("2006-01-02", opts.from)
			if err != nil {
				return search.Options{}, fmt.Errorf("invalid --from date %q: %w", opts.from, err)
			}
			dr.Start = start
		}
		if opts.to != "" {
			end, err := time.Parse("2006-01-02", opts.to)
			if err != nil {
				return search.Options{}, fmt.Errorf("invalid --to date %q: %w", opts.to, err)
			}
			// Include the whole end day.
			dr.End = end.Add(24*time.Hour - time.Nanosecond)
		}
		so.Filters.DateRange = dr
	}

	return so, nil
}
