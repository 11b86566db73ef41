package ledger

import (
	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// ReturnRequestItem asks to return a quantity of one product on an invoice.
type ReturnRequestItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ReturnOutcome describes the effect of a return on an invoice. Accepted
// holds the clamped quantities actually returned this call (the exact stock
// restore amounts); ReturnedItems is the merged cumulative list the invoice
// should carry afterwards.
type ReturnOutcome struct {
	Accepted      []model.CartItem
	ReturnedItems []model.CartItem
	Status        string
	NewDebt       decimal.Decimal
	ReturnedValue decimal.Decimal
}

// ApplyReturn computes a return against an invoice without mutating it.
// Requested quantities beyond the still-returnable amount are clamped, not
// rejected. A request that clamps to nothing yields an outcome with no
// accepted items and the invoice's current status and debt.
func ApplyReturn(inv model.Invoice, requested []ReturnRequestItem) ReturnOutcome {
	soldByProduct := make(map[int64]int, len(inv.Items))
	for _, it := range inv.Items {
		soldByProduct[it.ID] += it.Quantity
	}

	outcome := ReturnOutcome{
		Status:        inv.Status,
		NewDebt:       inv.Debt,
		ReturnedValue: decimal.Zero,
	}

	merged := make([]model.CartItem, len(inv.ReturnedItems))
	copy(merged, inv.ReturnedItems)

	for _, req := range requested {
		if req.Quantity <= 0 {
			continue
		}
		line := saleLine(inv.Items, req.ProductID)
		if line == nil {
			continue
		}
		already := 0
		for _, r := range merged {
			if r.ID == req.ProductID {
				already += r.Quantity
			}
		}
		qty := req.Quantity
		if max := soldByProduct[req.ProductID] - already; qty > max {
			qty = max
		}
		if qty <= 0 {
			continue
		}

		accepted := *line
		accepted.Quantity = qty
		outcome.Accepted = append(outcome.Accepted, accepted)
		outcome.ReturnedValue = outcome.ReturnedValue.Add(accepted.LineTotal())
		merged = mergeReturned(merged, accepted)
	}

	if len(outcome.Accepted) == 0 {
		outcome.ReturnedItems = inv.ReturnedItems
		return outcome
	}

	outcome.ReturnedItems = merged
	outcome.NewDebt = clampZero(inv.Debt.Sub(outcome.ReturnedValue))

	outcome.Status = model.StatusPartiallyReturned
	if fullyReturned(soldByProduct, merged) {
		outcome.Status = model.StatusFullyReturned
	}
	return outcome
}

func saleLine(items []model.CartItem, productID int64) *model.CartItem {
	for i := range items {
		if items[i].ID == productID {
			return &items[i]
		}
	}
	return nil
}

func mergeReturned(merged []model.CartItem, item model.CartItem) []model.CartItem {
	for i := range merged {
		if merged[i].ID == item.ID {
			merged[i].Quantity += item.Quantity
			return merged
		}
	}
	return append(merged, item)
}

func fullyReturned(soldByProduct map[int64]int, returned []model.CartItem) bool {
	returnedByProduct := make(map[int64]int, len(returned))
	for _, r := range returned {
		returnedByProduct[r.ID] += r.Quantity
	}
	for id, sold := range soldByProduct {
		if returnedByProduct[id] < sold {
			return false
		}
	}
	return true
}
