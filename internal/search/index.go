package search

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/source"
)

// IndexEntry is one indexed record. SearchableText is the lowercase
// space-joined concatenation of the record's textual and numeric fields;
// Keywords are the deduplicated tokens extracted from it.
type IndexEntry struct {
	Entity         model.Entity
	Type           model.EntityType
	SearchableText string
	Keywords       []string

	keywordSet map[string]struct{}
}

// EntryKey returns the unique index key for an entity: "{type}_{id}".
func EntryKey(t model.EntityType, id string) string {
	return string(t) + "_" + id
}

// indexSnapshot is one immutable generation of the index. Rebuilds
// construct a fresh snapshot and publish it via atomic pointer swap;
// entries preserves source order so scans are deterministic.
type indexSnapshot struct {
	entries    []*IndexEntry
	byKey      map[string]*IndexEntry
	builtAt    time.Time
	generation uint64
}

// buildSnapshot fetches all four collections and indexes every record.
// A failed collection read degrades to an empty collection for that type;
// the rebuild proceeds with the rest intact.
func buildSnapshot(ctx context.Context, src source.RecordSource, logger *slog.Logger, generation uint64) *indexSnapshot {
	snap := &indexSnapshot{
		byKey:      make(map[string]*IndexEntry),
		builtAt:    time.Now(),
		generation: generation,
	}

	suppliers, err := src.ListSuppliers(ctx)
	if err != nil {
		logger.Warn("collection_read_failed", slog.String("collection", source.CollectionSuppliers), slog.String("error", err.Error()))
		suppliers = nil
	}
	for _, s := range suppliers {
		snap.add(newIndexEntry(s, model.TypePlatform))
	}

	products, err := src.ListProducts(ctx)
	if err != nil {
		logger.Warn("collection_read_failed", slog.String("collection", source.CollectionProducts), slog.String("error", err.Error()))
		products = nil
	}
	for _, p := range products {
		snap.add(newIndexEntry(p, model.TypeProduct))
	}

	sales, err := src.ListSales(ctx)
	if err != nil {
		logger.Warn("collection_read_failed", slog.String("collection", source.CollectionSales), slog.String("error", err.Error()))
		sales = nil
	}
	for _, s := range sales {
		snap.add(newIndexEntry(s, model.TypeSale))
	}

	movements, err := src.ListMovements(ctx)
	if err != nil {
		logger.Warn("collection_read_failed", slog.String("collection", source.CollectionMovements), slog.String("error", err.Error()))
		movements = nil
	}
	for _, m := range movements {
		snap.add(newIndexEntry(m, model.TypeCreditMovement))
	}

	return snap
}

// add inserts an entry, keeping keys unique. A duplicate key replaces the
// earlier entry in place so scan order stays stable.
func (s *indexSnapshot) add(entry *IndexEntry) {
	key := EntryKey(entry.Type, entry.Entity.EntityID())
	if prev, ok := s.byKey[key]; ok {
		for i, e := range s.entries {
			if e == prev {
				s.entries[i] = entry
				break
			}
		}
		s.byKey[key] = entry
		return
	}
	s.byKey[key] = entry
	s.entries = append(s.entries, entry)
}

// counts tallies entries per entity type.
func (s *indexSnapshot) counts() map[model.EntityType]int {
	counts := make(map[model.EntityType]int, 4)
	for _, e := range s.entries {
		counts[e.Type]++
	}
	return counts
}

func newIndexEntry(e model.Entity, t model.EntityType) *IndexEntry {
	text := composeText(e)
	keywords := ExtractKeywords(text)
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return &IndexEntry{
		Entity:         e,
		Type:           t,
		SearchableText: text,
		Keywords:       keywords,
		keywordSet:     set,
	}
}

// composeText concatenates every searchable field of a record, in a fixed
// order per variant. Empty strings and zero or NaN numbers are dropped;
// the rest are space-joined and lowercased.
func composeText(e model.Entity) string {
	switch v := e.(type) {
	case model.Supplier:
		return joinText(
			v.ID, v.Name, v.Description,
			v.ContactName, v.ContactEmail, v.ContactPhone,
			boolText(v.IsActive),
			numText(v.CreditBalance), numText(v.LowBalanceThreshold),
			dateText(v.CreatedAt), dateText(v.UpdatedAt),
		)
	case model.Product:
		return joinText(
			v.ID, v.Name, v.Description, v.Category, v.DurationType,
			intText(v.StockCount),
			numText(v.PurchasePrice), numText(v.SuggestedSellPrice),
			numText(v.SupplierCost), numText(v.ProfitMargin),
			boolText(v.IsActive),
			v.SupplierID,
			dateText(v.CreatedAt), dateText(v.UpdatedAt),
		)
	case model.Sale:
		return joinText(
			v.ID, v.ProductName, v.CustomerName, v.CustomerPhone,
			intText(v.Quantity),
			numText(v.UnitPrice), numText(v.TotalPrice),
			v.PaymentMethod, v.PaymentStatus,
			numText(v.Profit),
			v.SupplierID,
			dateText(v.SaleDate),
		)
	case model.CreditMovement:
		return joinText(
			v.ID, v.SupplierID, string(v.Type),
			numText(v.Amount), numText(v.PreviousBalance), numText(v.NewBalance),
			v.Reference, v.Description, v.CreatedBy,
			dateText(v.CreatedAt),
		)
	default:
		return ""
	}
}

// joinText drops empty parts, joins the rest with single spaces, and
// lowercases the result.
func joinText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// numText formats a number for indexing. Zero and NaN are falsy and
// dropped from the searchable text.
func numText(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func intText(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// boolText formats a flag for indexing. False is falsy and dropped.
func boolText(b bool) string {
	if !b {
		return ""
	}
	return "true"
}

// dateText formats a timestamp for indexing as lowercase RFC 3339. The
// zero time is falsy and dropped.
func dateText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strings.ToLower(t.Format(time.RFC3339))
}

// nonWord matches runs of characters outside [a-z0-9_] in lowercased text.
var nonWord = regexp.MustCompile(`[^a-z0-9_]+`)

// ExtractKeywords tokenizes searchable text: lowercase, non-word runs
// replaced by spaces, tokens of length <= 2 dropped, duplicates removed
// preserving first occurrence order.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.Fields(nonWord.ReplaceAllString(lower, " "))

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords
}

// primaryDate returns the entry's primary date: createdAt, or saleDate
// for sales.
func primaryDate(e model.Entity) time.Time {
	switch v := e.(type) {
	case model.Supplier:
		return v.CreatedAt
	case model.Product:
		return v.CreatedAt
	case model.Sale:
		return v.SaleDate
	case model.CreditMovement:
		return v.CreatedAt
	default:
		return time.Time{}
	}
}

// primaryName returns the display name used for name scoring and sorting.
func primaryName(e model.Entity) string {
	switch v := e.(type) {
	case model.Supplier:
		return v.Name
	case model.Product:
		return v.Name
	case model.Sale:
		return v.ProductName
	case model.CreditMovement:
		return string(v.Type)
	default:
		return ""
	}
}

// amountOf returns the type-specific amount used by amount filters and
// amount sorting.
func amountOf(e model.Entity) float64 {
	switch v := e.(type) {
	case model.Supplier:
		return v.CreditBalance
	case model.Product:
		return v.SuggestedSellPrice
	case model.Sale:
		return v.TotalPrice
	case model.CreditMovement:
		return math.Abs(v.Amount)
	default:
		return 0
	}
}

// supplierIDOf returns the supplier a record belongs to; a supplier
// belongs to itself.
func supplierIDOf(e model.Entity) string {
	switch v := e.(type) {
	case model.Supplier:
		return v.ID
	case model.Product:
		return v.SupplierID
	case model.Sale:
		return v.SupplierID
	case model.CreditMovement:
		return v.SupplierID
	default:
		return ""
	}
}

// statusOf derives the type-specific status tag used by facets and
// result formatting.
func statusOf(e model.Entity) string {
	switch v := e.(type) {
	case model.Supplier:
		return activeStatus(v.IsActive)
	case model.Product:
		return activeStatus(v.IsActive)
	case model.Sale:
		return v.PaymentStatus
	case model.CreditMovement:
		return string(v.Type)
	default:
		return ""
	}
}

func activeStatus(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
