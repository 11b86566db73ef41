package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
)

func TestCompleteSale_CashSale(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	svc := NewSalesService(ctrl, nil)

	invoice, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 2}},
		PaidAmount: dec(25),
	})
	require.NoError(t, err)

	assert.True(t, invoice.Total.Equal(dec(20)))
	assert.True(t, invoice.Change.Equal(dec(5)))
	assert.Equal(t, model.InvoiceTypeCash, invoice.Type)
	assert.Equal(t, model.StatusCompleted, invoice.Status)
	assert.NotZero(t, invoice.ID)

	ctrl.View(func(doc *model.Document) {
		require.Len(t, doc.Invoices, 1)
		assert.Equal(t, 3, doc.Products[0].Stock)
		assert.NotEmpty(t, doc.Toasts)
	})
}

func TestCompleteSale_CreditRequiresCustomer(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	svc := NewSalesService(ctrl, nil)

	_, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 1}},
		PaidAmount: dec(4),
	})
	assert.ErrorIs(t, err, ErrCreditWithoutCustomer)

	// The rejected sale must leave nothing behind.
	ctrl.View(func(doc *model.Document) {
		assert.Empty(t, doc.Invoices)
		assert.Equal(t, 5, doc.Products[0].Stock)
	})
}

func TestCompleteSale_CreditSaleWithCustomer(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	seedCustomer(t, ctrl, model.Customer{ID: 7, Name: "omar"})
	svc := NewSalesService(ctrl, nil)

	invoice, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 3}},
		PaidAmount: dec(20),
		CustomerID: ptr(int64(7)),
	})
	require.NoError(t, err)

	assert.Equal(t, model.InvoiceTypeCredit, invoice.Type)
	assert.True(t, invoice.Debt.Equal(dec(10)))
}

func TestCompleteSale_UnknownCustomer(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	svc := NewSalesService(ctrl, nil)

	_, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 1}},
		PaidAmount: dec(10),
		CustomerID: ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteSale_UnknownProduct(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewSalesService(ctrl, nil)

	_, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 42, Quantity: 1}},
		PaidAmount: dec(10),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteSale_CouponApplied(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	require.NoError(t, ctrl.Update(func(doc *model.Document) error {
		doc.Coupons = append(doc.Coupons, model.Coupon{
			ID: 1, Code: "SAVE5", Type: model.CouponFixedAmount, Value: dec(5), IsActive: true,
		})
		return nil
	}))
	svc := NewSalesService(ctrl, nil)

	invoice, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 3}},
		PaidAmount: dec(25),
		CouponCode: "save5", // matched case-insensitively
	})
	require.NoError(t, err)

	assert.Equal(t, "SAVE5", invoice.CouponCode)
	assert.True(t, invoice.DiscountAmount.Equal(dec(5)))
	assert.True(t, invoice.Total.Equal(dec(25)))
}

func TestCompleteSale_InactiveCouponRejected(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	require.NoError(t, ctrl.Update(func(doc *model.Document) error {
		doc.Coupons = append(doc.Coupons, model.Coupon{ID: 1, Code: "OFF", IsActive: false})
		return nil
	}))
	svc := NewSalesService(ctrl, nil)

	_, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 1}},
		PaidAmount: dec(10),
		CouponCode: "OFF",
	})
	assert.ErrorIs(t, err, ledger.ErrCouponInactive)
}

func TestCompleteSale_OversellingGoesNegative(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 1})
	svc := NewSalesService(ctrl, nil)

	_, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 3}},
		PaidAmount: dec(30),
	})
	require.NoError(t, err)

	ctrl.View(func(doc *model.Document) {
		assert.Equal(t, -2, doc.Products[0].Stock)
	})
}

func TestCompleteSale_PriceOverride(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	svc := NewSalesService(ctrl, nil)

	override := dec(8)
	invoice, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 2, Price: &override}},
		PaidAmount: dec(16),
	})
	require.NoError(t, err)
	assert.True(t, invoice.Total.Equal(dec(16)))
}

func TestProcessReturn_RestoresStockAndDebt(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	seedCustomer(t, ctrl, model.Customer{ID: 7, Name: "omar"})
	svc := NewSalesService(ctrl, nil)

	sold, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 3}},
		PaidAmount: decimal.Zero,
		CustomerID: ptr(int64(7)),
	})
	require.NoError(t, err)

	returned, err := svc.ProcessReturn(sold.ID, []ledger.ReturnRequestItem{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPartiallyReturned, returned.Status)
	assert.True(t, returned.Debt.Equal(dec(10)), "debt %s", returned.Debt)
	ctrl.View(func(doc *model.Document) {
		assert.Equal(t, 4, doc.Products[0].Stock)
	})
}

func TestProcessReturn_FullyReturnedIsNoOp(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 5})
	svc := NewSalesService(ctrl, nil)

	sold, err := svc.CompleteSale(CompleteSaleRequest{
		Lines:      []SaleLine{{ProductID: 1, Quantity: 1}},
		PaidAmount: dec(10),
	})
	require.NoError(t, err)

	first, err := svc.ProcessReturn(sold.ID, []ledger.ReturnRequestItem{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, model.StatusFullyReturned, first.Status)

	// A second return changes nothing: same status, no extra stock.
	second, err := svc.ProcessReturn(sold.ID, []ledger.ReturnRequestItem{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, model.StatusFullyReturned, second.Status)
	ctrl.View(func(doc *model.Document) {
		assert.Equal(t, 5, doc.Products[0].Stock)
	})
}

func TestProcessReturn_UnknownInvoice(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewSalesService(ctrl, nil)

	_, err := svc.ProcessReturn(404, []ledger.ReturnRequestItem{{ProductID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpandOffer(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl,
		model.Product{ID: 1, Name: "a", Price: dec(10), Stock: 10},
		model.Product{ID: 2, Name: "b", Price: dec(20), Stock: 10},
	)
	require.NoError(t, ctrl.Update(func(doc *model.Document) error {
		doc.Offers = append(doc.Offers, model.Offer{
			ID:    5,
			Name:  "combo",
			Items: []model.OfferItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}},
			Price: dec(24),
		})
		return nil
	}))
	svc := NewSalesService(ctrl, nil)

	lines, err := svc.ExpandOffer(5)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Price.Equal(dec(8)))

	_, err = svc.ExpandOffer(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
