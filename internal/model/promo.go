package model

import "github.com/shopspring/decimal"

// CouponType enum constants
const (
	CouponFixedAmount = "fixed_amount"
	CouponPercentage  = "percentage"
)

// OfferItem is one constituent of a bundle.
type OfferItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Offer is a fixed bundle of products sold together at an overridden total
// price. Constituent lines are priced by the bundle discount ratio when the
// offer is added to a cart.
type Offer struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Barcode     string          `json:"barcode,omitempty"`
	Items       []OfferItem     `json:"items"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
}

// Coupon is a reusable discount code applied at checkout. Codes are stored
// upper-cased and matched case-insensitively.
type Coupon struct {
	ID                int64           `json:"id"`
	Code              string          `json:"code"`
	Type              string          `json:"type"` // fixed_amount, percentage
	Value             decimal.Decimal `json:"value"`
	IsActive          bool            `json:"isActive"`
	MinPurchaseAmount decimal.Decimal `json:"minPurchaseAmount"`
	ExpiryDate        string          `json:"expiryDate,omitempty"` // YYYY-MM-DD
}
