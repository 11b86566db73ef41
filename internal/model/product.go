package model

import "github.com/shopspring/decimal"

// FieldType enum constants for custom product fields
const (
	FieldTypeText   = "text"
	FieldTypeNumber = "number"
	FieldTypeDate   = "date"
)

// Product is a stocked item. ImageURL can be a remote URL or an inline
// base64 data URL captured by the UI camera.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Price         decimal.Decimal   `json:"price"`
	PurchasePrice decimal.Decimal   `json:"purchasePrice"`
	Stock         int               `json:"stock"`
	Barcode       string            `json:"barcode"`
	ImageURL      string            `json:"imageUrl"`
	ExpiryDate    string            `json:"expiryDate,omitempty"` // YYYY-MM-DD
	CustomFields  map[string]string `json:"customFields,omitempty"`
}

// CartItem is a product snapshot plus a quantity. Invoices keep these
// denormalized copies so deleting or editing a product never rewrites
// historical sales.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the sell value of the line (price x quantity).
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CustomFieldDef describes one user-defined product attribute.
type CustomFieldDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
