package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType enum constants
const (
	InvoiceTypeCash   = "cash"
	InvoiceTypeCredit = "credit"
)

// InvoiceStatus enum constants
const (
	StatusCompleted         = "completed"
	StatusPartiallyReturned = "partially_returned"
	StatusFullyReturned     = "fully_returned"
)

// Invoice is a sales ledger entry. It is created once at sale completion;
// only return processing mutates it afterwards (status, returnedItems and
// the debt reduction). Sold quantities and prices never change.
type Invoice struct {
	ID                   int64           `json:"id"`
	CustomerID           *int64          `json:"customerId,omitempty"` // nil for anonymous cash sales
	Items                []CartItem      `json:"items"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	DiscountAmount       decimal.Decimal `json:"discountAmount"` // coupon discount
	CouponCode           string          `json:"couponCode,omitempty"`
	ManualDiscountAmount decimal.Decimal `json:"manualDiscountAmount"`
	TaxAmount            decimal.Decimal `json:"taxAmount"`
	Total                decimal.Decimal `json:"total"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	Debt                 decimal.Decimal `json:"debt"`
	Change               decimal.Decimal `json:"change"`
	Date                 time.Time       `json:"date"`
	Type                 string          `json:"type"`   // cash, credit
	Status               string          `json:"status"` // completed, partially_returned, fully_returned
	ReturnedItems        []CartItem      `json:"returnedItems,omitempty"`
}

// ReturnedQuantity reports how many units of a product were already
// returned on this invoice.
func (inv *Invoice) ReturnedQuantity(productID int64) int {
	for _, it := range inv.ReturnedItems {
		if it.ID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Payment is an append-only customer debt repayment.
type Payment struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// PurchaseInvoiceItem is a purchased line. ProductID is nil when the line
// does not match a registered product yet; the caller is expected to run
// the product creation flow for those.
type PurchaseInvoiceItem struct {
	ProductID     *int64          `json:"productId,omitempty"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// PurchaseInvoice records goods bought from a supplier. Append-only except
// for debt reduction through supplier payments.
type PurchaseInvoice struct {
	ID         int64                 `json:"id"`
	SupplierID int64                 `json:"supplierId"`
	Items      []PurchaseInvoiceItem `json:"items"`
	Total      decimal.Decimal       `json:"total"`
	AmountPaid decimal.Decimal       `json:"amountPaid"`
	Debt       decimal.Decimal       `json:"debt"`
	Date       time.Time             `json:"date"`
}

// SupplierPayment mirrors Payment for the supplier side.
type SupplierPayment struct {
	ID         int64           `json:"id"`
	SupplierID int64           `json:"supplierId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}
