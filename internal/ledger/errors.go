package ledger

import "errors"

var (
	// ErrInsufficientStock rejects an offer expansion before any mutation
	// when a constituent product cannot cover the bundle quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOfferPrice means the bundle's constituents sum to a non-positive
	// price, so no discount ratio can be computed.
	ErrOfferPrice = errors.New("offer price cannot be computed")

	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponMinPurchase = errors.New("purchase amount below coupon minimum")
)
