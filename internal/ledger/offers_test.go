package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/model"
)

func TestExpandOffer_ProportionalPricing(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "a", Price: dec(10), Stock: 10},
		{ID: 2, Name: "b", Price: dec(20), Stock: 10},
	}
	// Individual total 30, bundle 24: ratio 0.8.
	offer := model.Offer{
		Name:  "combo",
		Items: []model.OfferItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}},
		Price: dec(24),
	}

	lines, err := ExpandOffer(products, offer)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Price.Equal(dec(8)), "line 0 price %s", lines[0].Price)
	assert.True(t, lines[1].Price.Equal(dec(16)), "line 1 price %s", lines[1].Price)

	// Line totals sum back to the bundle price.
	sum := lines[0].LineTotal().Add(lines[1].LineTotal())
	assert.True(t, sum.Equal(dec(24)))
}

func TestExpandOffer_InsufficientStock(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "a", Price: dec(10), Stock: 1}}
	offer := model.Offer{
		Name:  "bulk",
		Items: []model.OfferItem{{ProductID: 1, Quantity: 2}},
		Price: dec(15),
	}

	_, err := ExpandOffer(products, offer)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestExpandOffer_MissingProduct(t *testing.T) {
	offer := model.Offer{
		Name:  "ghost",
		Items: []model.OfferItem{{ProductID: 42, Quantity: 1}},
		Price: dec(5),
	}

	_, err := ExpandOffer(nil, offer)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestExpandOffer_ZeroOriginalTotal(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "free", Price: decimal.Zero, Stock: 5}}
	offer := model.Offer{
		Name:  "div0",
		Items: []model.OfferItem{{ProductID: 1, Quantity: 1}},
		Price: dec(5),
	}

	_, err := ExpandOffer(products, offer)
	assert.ErrorIs(t, err, ErrOfferPrice)
}
