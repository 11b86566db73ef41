package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// ExpandOffer turns a bundle into priced cart lines. Each constituent line
// carries price = individualPrice x (bundlePrice / sum of individual
// prices), so the bundle discount is spread proportionally.
//
// Fails with ErrInsufficientStock before producing any line when a
// constituent's stock cannot cover the bundle quantity.
func ExpandOffer(products []model.Product, offer model.Offer) ([]model.CartItem, error) {
	constituents := make([]model.Product, 0, len(offer.Items))
	originalTotal := decimal.Zero

	for _, item := range offer.Items {
		var product *model.Product
		for i := range products {
			if products[i].ID == item.ProductID {
				product = &products[i]
				break
			}
		}
		if product == nil || product.Stock < item.Quantity {
			name := fmt.Sprintf("#%d", item.ProductID)
			if product != nil {
				name = product.Name
			}
			return nil, fmt.Errorf("offer %q, product %s: %w", offer.Name, name, ErrInsufficientStock)
		}
		constituents = append(constituents, *product)
		originalTotal = originalTotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if !originalTotal.IsPositive() {
		return nil, fmt.Errorf("offer %q: %w", offer.Name, ErrOfferPrice)
	}
	ratio := offer.Price.Div(originalTotal)

	lines := make([]model.CartItem, 0, len(offer.Items))
	for i, item := range offer.Items {
		p := constituents[i]
		p.Price = p.Price.Mul(ratio)
		lines = append(lines, model.CartItem{Product: p, Quantity: item.Quantity})
	}
	return lines, nil
}
