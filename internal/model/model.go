// Package model defines the four business record variants the search core
// indexes: suppliers ("platforms"), digital products, sales, and credit
// ledger movements. The variants form a closed sum type via the Entity
// interface; the indexer, scorer, and formatter switch exhaustively over
// the concrete types, so adding a fifth variant forces updates there.
package model

import "time"

// EntityType tags an indexed record with its variant.
type EntityType string

const (
	TypePlatform       EntityType = "platform"
	TypeProduct        EntityType = "product"
	TypeSale           EntityType = "sale"
	TypeCreditMovement EntityType = "credit_movement"
)

// AllEntityTypes lists every indexable variant in index order.
func AllEntityTypes() []EntityType {
	return []EntityType{TypePlatform, TypeProduct, TypeSale, TypeCreditMovement}
}

// Valid reports whether t is one of the four known variants.
func (t EntityType) Valid() bool {
	switch t {
	case TypePlatform, TypeProduct, TypeSale, TypeCreditMovement:
		return true
	}
	return false
}

// Entity is the closed union over the four record variants.
// The unexported method keeps the set sealed to this package.
type Entity interface {
	EntityID() string
	isEntity()
}

// MovementType classifies a credit ledger movement.
type MovementType string

const (
	MovementCreditAdded    MovementType = "credit_added"
	MovementCreditDeducted MovementType = "credit_deducted"
	MovementSaleDeduction  MovementType = "sale_deduction"
	MovementAdjustment     MovementType = "adjustment"
)

// Supplier is an upstream platform account the business buys stock credit
// from. It carries a running credit balance in DZD.
type Supplier struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	ContactName         string    `json:"contactName"`
	ContactEmail        string    `json:"contactEmail"`
	ContactPhone        string    `json:"contactPhone"`
	IsActive            bool      `json:"isActive"`
	CreditBalance       float64   `json:"creditBalance"`
	LowBalanceThreshold float64   `json:"lowBalanceThreshold"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (s Supplier) EntityID() string { return s.ID }
func (Supplier) isEntity()          {}

// Product is a digital product in inventory, sourced from a supplier.
type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	DurationType       string    `json:"durationType"`
	StockCount         int       `json:"stockCount"`
	PurchasePrice      float64   `json:"purchasePrice"`
	SuggestedSellPrice float64   `json:"suggestedSellPrice"`
	SupplierCost       float64   `json:"supplierCost"`
	ProfitMargin       float64   `json:"profitMargin"`
	IsActive           bool      `json:"isActive"`
	SupplierID         string    `json:"supplierId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (p Product) EntityID() string { return p.ID }
func (Product) isEntity()          {}

// Sale records one customer purchase.
type Sale struct {
	ID            string    `json:"id"`
	ProductName   string    `json:"productName"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice"`
	TotalPrice    float64   `json:"totalPrice"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	Profit        float64   `json:"profit"`
	SupplierID    string    `json:"supplierId"`
	SaleDate      time.Time `json:"saleDate"`
}

func (s Sale) EntityID() string { return s.ID }
func (Sale) isEntity()          {}

// CreditMovement is a signed adjustment to a supplier's credit balance:
// a top-up, a deduction, a sale-triggered deduction, or a manual
// adjustment. Amount is signed; PreviousBalance and NewBalance snapshot
// the ledger around it.
type CreditMovement struct {
	ID              string       `json:"id"`
	SupplierID      string       `json:"supplierId"`
	Type            MovementType `json:"type"`
	Amount          float64      `json:"amount"`
	PreviousBalance float64      `json:"previousBalance"`
	NewBalance      float64      `json:"newBalance"`
	Reference       string       `json:"reference"`
	Description     string       `json:"description"`
	CreatedBy       string       `json:"createdBy"`
	CreatedAt       time.Time    `json:"createdAt"`
}

func (m CreditMovement) EntityID() string { return m.ID }
func (CreditMovement) isEntity()          {}
