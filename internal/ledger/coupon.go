package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// FindCoupon matches a code case-insensitively. Returns ErrCouponNotFound
// when no coupon carries the code.
func FindCoupon(coupons []model.Coupon, code string) (model.Coupon, error) {
	code = strings.TrimSpace(code)
	for _, c := range coupons {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return model.Coupon{}, ErrCouponNotFound
}

// ValidateCoupon checks the redemption rules: active flag, expiry date and
// minimum purchase amount against the cart subtotal.
func ValidateCoupon(c model.Coupon, subtotal decimal.Decimal, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if c.ExpiryDate != "" {
		if expiry, ok := ParseDate(c.ExpiryDate); ok && expiry.Before(now) {
			return ErrCouponExpired
		}
	}
	if c.MinPurchaseAmount.IsPositive() && subtotal.LessThan(c.MinPurchaseAmount) {
		return ErrCouponMinPurchase
	}
	return nil
}

// ParseDate accepts the YYYY-MM-DD dates the UI writes, falling back to
// RFC3339 for timestamps imported from older backups.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
