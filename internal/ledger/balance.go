package ledger

import (
	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// CustomerBalance derives a customer's outstanding debt from the full
// transaction history: the sum of stored invoice debts minus the sum of
// payments. Never cached; overpayment yields a negative balance.
func CustomerBalance(invoices []model.Invoice, payments []model.Payment, customerID int64) decimal.Decimal {
	balance := decimal.Zero
	for _, inv := range invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			balance = balance.Add(inv.Debt)
		}
	}
	for _, p := range payments {
		if p.CustomerID == customerID {
			balance = balance.Sub(p.Amount)
		}
	}
	return balance
}

// CustomerBalances derives every customer balance in one pass.
func CustomerBalances(invoices []model.Invoice, payments []model.Payment) map[int64]decimal.Decimal {
	balances := make(map[int64]decimal.Decimal)
	for _, inv := range invoices {
		if inv.CustomerID != nil {
			balances[*inv.CustomerID] = balances[*inv.CustomerID].Add(inv.Debt)
		}
	}
	for _, p := range payments {
		balances[p.CustomerID] = balances[p.CustomerID].Sub(p.Amount)
	}
	return balances
}

// SupplierBalance mirrors CustomerBalance over purchase invoices and
// supplier payments.
func SupplierBalance(purchases []model.PurchaseInvoice, payments []model.SupplierPayment, supplierID int64) decimal.Decimal {
	balance := decimal.Zero
	for _, pi := range purchases {
		if pi.SupplierID == supplierID {
			balance = balance.Add(pi.Debt)
		}
	}
	for _, p := range payments {
		if p.SupplierID == supplierID {
			balance = balance.Sub(p.Amount)
		}
	}
	return balance
}
