// Package ledger holds the pure financial computations: invoice pricing,
// offer bundle expansion, return processing, balance aggregation and
// notification derivation. No I/O, deterministic given inputs.
package ledger

import (
	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// ManualDiscount is a one-off discount entered at checkout, independent of
// coupons. Type reuses the coupon type constants.
type ManualDiscount struct {
	Type  string          `json:"type"` // fixed_amount, percentage
	Value decimal.Decimal `json:"value"`
}

// SaleTotals is the fully priced outcome of a sale.
type SaleTotals struct {
	Subtotal       decimal.Decimal
	CouponDiscount decimal.Decimal
	ManualDiscount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Debt           decimal.Decimal
	Change         decimal.Decimal
	Type           string // cash, credit
}

// PriceSale computes invoice totals. The layering order is fixed and load
// bearing: coupon discount first, then manual discount, then tax. Each
// discount is clamped so the running subtotal never goes negative.
func PriceSale(items []model.CartItem, paid decimal.Decimal, coupon *model.Coupon, manual *ManualDiscount, taxPercent decimal.Decimal) SaleTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	couponDiscount := decimal.Zero
	if coupon != nil {
		couponDiscount = discountAmount(coupon.Type, coupon.Value, subtotal)
	}
	afterCoupon := subtotal.Sub(couponDiscount)

	manualDiscount := decimal.Zero
	if manual != nil && manual.Value.IsPositive() {
		manualDiscount = discountAmount(manual.Type, manual.Value, afterCoupon)
	}
	afterDiscounts := afterCoupon.Sub(manualDiscount)

	taxAmount := decimal.Zero
	if taxPercent.IsPositive() {
		taxAmount = afterDiscounts.Mul(taxPercent).Div(decimal.NewFromInt(100))
	}
	total := afterDiscounts.Add(taxAmount)

	debt := clampZero(total.Sub(paid))
	change := clampZero(paid.Sub(total))

	saleType := model.InvoiceTypeCash
	if debt.IsPositive() {
		saleType = model.InvoiceTypeCredit
	}

	return SaleTotals{
		Subtotal:       subtotal,
		CouponDiscount: couponDiscount,
		ManualDiscount: manualDiscount,
		TaxAmount:      taxAmount,
		Total:          total,
		Debt:           debt,
		Change:         change,
		Type:           saleType,
	}
}

// discountAmount resolves a fixed or percentage discount against base and
// clamps it to base.
func discountAmount(kind string, value, base decimal.Decimal) decimal.Decimal {
	amount := value
	if kind == model.CouponPercentage {
		amount = base.Mul(value).Div(decimal.NewFromInt(100))
	}
	return decimal.Min(base, amount)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
