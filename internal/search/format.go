package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nzemmouri/subdeck/internal/model"
)

// Result icons per entity variant.
const (
	iconPlatform     = "🏢"
	iconProduct      = "📦"
	iconSale         = "💰"
	iconCreditIn     = "💳"
	iconCreditOut    = "💸"
	subtitleDateOnly = "Jan 2, 2006"
)

// formatEntry converts a scored index entry into the uniform Result
// shape. Title, subtitle, description, URL, and icon follow a fixed
// template per variant; Metadata reproduces the type-specific field bag
// consumers depend on, field for field.
func formatEntry(entry *IndexEntry, score float64, matched []string) Result {
	switch v := entry.Entity.(type) {
	case model.Supplier:
		return formatSupplier(v, score, matched)
	case model.Product:
		return formatProduct(v, score, matched)
	case model.Sale:
		return formatSale(v, score, matched)
	case model.CreditMovement:
		return formatMovement(v, score, matched)
	default:
		return Result{RelevanceScore: score, MatchedFields: matched}
	}
}

func formatSupplier(s model.Supplier, score float64, matched []string) Result {
	subtitle := s.Description
	if subtitle == "" {
		subtitle = "Platform"
	}
	contact := s.ContactName
	if contact == "" {
		contact = "N/A"
	}
	return Result{
		ID:          s.ID,
		Type:        model.TypePlatform,
		Title:       s.Name,
		Subtitle:    subtitle,
		Description: fmt.Sprintf("Balance: %s DZD • Contact: %s", amountText(s.CreditBalance), contact),
		Metadata: map[string]any{
			"creditBalance":       s.CreditBalance,
			"lowBalanceThreshold": s.LowBalanceThreshold,
			"contactName":         s.ContactName,
			"contactEmail":        s.ContactEmail,
			"contactPhone":        s.ContactPhone,
			"isActive":            s.IsActive,
		},
		RelevanceScore: score,
		MatchedFields:  matched,
		URL:            "/platforms/" + s.ID,
		Icon:           iconPlatform,
		Status:         activeStatus(s.IsActive),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      optionalTime(s.UpdatedAt),
	}
}

func formatProduct(p model.Product, score float64, matched []string) Result {
	return Result{
		ID:       p.ID,
		Type:     model.TypeProduct,
		Title:    p.Name,
		Subtitle: fmt.Sprintf("%s • %s", p.Category, p.DurationType),
		Description: fmt.Sprintf("Stock: %d • Price: %s DZD • Margin: %s%%",
			p.StockCount, amountText(p.SuggestedSellPrice), amountText(p.ProfitMargin)),
		Metadata: map[string]any{
			"category":           p.Category,
			"durationType":       p.DurationType,
			"stockCount":         p.StockCount,
			"purchasePrice":      p.PurchasePrice,
			"suggestedSellPrice": p.SuggestedSellPrice,
			"supplierCost":       p.SupplierCost,
			"profitMargin":       p.ProfitMargin,
			"supplierId":         p.SupplierID,
			"isActive":           p.IsActive,
		},
		RelevanceScore: score,
		MatchedFields:  matched,
		URL:            "/inventory/products/" + p.ID,
		Icon:           iconProduct,
		Status:         activeStatus(p.IsActive),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      optionalTime(p.UpdatedAt),
	}
}

func formatSale(s model.Sale, score float64, matched []string) Result {
	customer := s.CustomerName
	if customer == "" {
		customer = "Customer"
	}
	return Result{
		ID:       s.ID,
		Type:     model.TypeSale,
		Title:    fmt.Sprintf("%s - %s", s.ProductName, customer),
		Subtitle: "Sale • " + s.SaleDate.Format(subtitleDateOnly),
		Description: fmt.Sprintf("Qty: %d • Total: %s DZD • Profit: %s DZD • %s",
			s.Quantity, amountText(s.TotalPrice), amountText(s.Profit), s.PaymentStatus),
		Metadata: map[string]any{
			"quantity":      s.Quantity,
			"unitPrice":     s.UnitPrice,
			"totalPrice":    s.TotalPrice,
			"paymentMethod": s.PaymentMethod,
			"paymentStatus": s.PaymentStatus,
			"profit":        s.Profit,
			"customerPhone": s.CustomerPhone,
			"supplierId":    s.SupplierID,
		},
		RelevanceScore: score,
		MatchedFields:  matched,
		URL:            "/sales/" + s.ID,
		Icon:           iconSale,
		Status:         s.PaymentStatus,
		CreatedAt:      s.SaleDate,
	}
}

func formatMovement(m model.CreditMovement, score float64, matched []string) Result {
	icon := iconCreditIn
	if m.Amount < 0 {
		icon = iconCreditOut
	}
	delta := "+" + amountText(m.Amount)
	if m.Amount < 0 {
		delta = "-" + amountText(math.Abs(m.Amount))
	}
	description := fmt.Sprintf("%s DZD → Balance: %s DZD", delta, amountText(m.NewBalance))
	if m.Reference != "" {
		description += " • Ref: " + m.Reference
	}
	return Result{
		ID:   m.ID,
		Type: model.TypeCreditMovement,
		Title: fmt.Sprintf("%s - %s DZD",
			movementTitle(m.Type), amountText(math.Abs(m.Amount))),
		Subtitle:    "Credit Movement • " + m.CreatedAt.Format(subtitleDateOnly),
		Description: description,
		Metadata: map[string]any{
			"movementType":    m.Type,
			"amount":          m.Amount,
			"previousBalance": m.PreviousBalance,
			"newBalance":      m.NewBalance,
			"reference":       m.Reference,
			"createdBy":       m.CreatedBy,
			"supplierId":      m.SupplierID,
		},
		RelevanceScore: score,
		MatchedFields:  matched,
		URL:            "/platforms/" + m.SupplierID + "/credits",
		Icon:           icon,
		Status:         string(m.Type),
		CreatedAt:      m.CreatedAt,
	}
}

// movementTitle renders a movement type uppercased with spaces:
// credit_added becomes "CREDIT ADDED".
func movementTitle(t model.MovementType) string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// amountText formats an amount without trailing zeros.
func amountText(f float64) string {
	if math.IsNaN(f) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
