package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
)

func TestPromo_SaveCouponUppercasesCode(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewPromoService(ctrl, nil)

	coupon, err := svc.SaveCoupon(0, CouponRequest{
		Code: "  welcome10 ", Type: model.CouponPercentage, Value: dec(10), IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", coupon.Code)
	assert.NotZero(t, coupon.ID)

	// Update by id keeps it the same coupon.
	updated, err := svc.SaveCoupon(coupon.ID, CouponRequest{
		Code: "welcome10", Type: model.CouponPercentage, Value: dec(15), IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, updated.ID)
	require.Len(t, svc.ListCoupons(), 1)
	assert.True(t, svc.ListCoupons()[0].Value.Equal(dec(15)))

	_, err = svc.SaveCoupon(999, CouponRequest{Code: "x", Type: model.CouponFixedAmount, Value: dec(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromo_ValidateCoupon(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewPromoService(ctrl, nil)

	_, err := svc.SaveCoupon(0, CouponRequest{
		Code: "BIG", Type: model.CouponFixedAmount, Value: dec(20),
		IsActive: true, MinPurchaseAmount: dec(100),
	})
	require.NoError(t, err)

	coupon, err := svc.ValidateCoupon(ValidateCouponRequest{Code: "big", Subtotal: dec(150)})
	require.NoError(t, err)
	assert.Equal(t, "BIG", coupon.Code)

	_, err = svc.ValidateCoupon(ValidateCouponRequest{Code: "big", Subtotal: dec(50)})
	assert.ErrorIs(t, err, ledger.ErrCouponMinPurchase)

	_, err = svc.ValidateCoupon(ValidateCouponRequest{Code: "absent", Subtotal: dec(150)})
	assert.ErrorIs(t, err, ledger.ErrCouponNotFound)
}

func TestPromo_OfferLifecycle(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewPromoService(ctrl, nil)

	offer, err := svc.SaveOffer(0, OfferRequest{
		Name:     "combo",
		Items:    []model.OfferItem{{ProductID: 1, Quantity: 2}},
		Price:    dec(30),
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, offer.ID)

	renamed, err := svc.SaveOffer(offer.ID, OfferRequest{
		Name:  "weekend combo",
		Items: []model.OfferItem{{ProductID: 1, Quantity: 2}},
		Price: dec(28),
	})
	require.NoError(t, err)
	assert.Equal(t, "weekend combo", renamed.Name)

	require.NoError(t, svc.DeleteOffer(offer.ID))
	assert.Empty(t, svc.ListOffers())
}
