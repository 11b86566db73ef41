package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// --- DTOs ---

// SaleLine references a product in the cart. Price overrides the product's
// sell price when set (offer lines carry their discounted price).
type SaleLine struct {
	ProductID int64            `json:"productId" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	Price     *decimal.Decimal `json:"price"`
}

type CompleteSaleRequest struct {
	Lines          []SaleLine             `json:"lines" binding:"required,min=1,dive"`
	PaidAmount     decimal.Decimal        `json:"paidAmount"`
	CustomerID     *int64                 `json:"customerId"`
	CouponCode     string                 `json:"couponCode"`
	ManualDiscount *ledger.ManualDiscount `json:"manualDiscount"`
	TaxPercent     decimal.Decimal        `json:"taxPercent"`
}

type ProcessReturnRequest struct {
	Items []ledger.ReturnRequestItem `json:"items" binding:"required,min=1,dive"`
}

// --- Interface ---

type SalesService interface {
	CompleteSale(req CompleteSaleRequest) (model.Invoice, error)
	ProcessReturn(invoiceID int64, items []ledger.ReturnRequestItem) (model.Invoice, error)
	ExpandOffer(offerID int64) ([]model.CartItem, error)
	GetInvoices() []model.Invoice
	GetInvoice(id int64) (model.Invoice, error)
}

type salesService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewSalesService(ctrl *store.Controller, hub *ws.Hub) SalesService {
	return &salesService{ctrl: ctrl, hub: hub}
}

// --- Implementation ---

// CompleteSale prices the cart, creates the invoice and decrements stock.
// There is deliberately no negative-stock guard here: overselling drives
// stock below zero, exactly as the reference behavior allows.
func (s *salesService) CompleteSale(req CompleteSaleRequest) (model.Invoice, error) {
	var invoice model.Invoice
	err := s.ctrl.Update(func(doc *model.Document) error {
		items := make([]model.CartItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			p := doc.ProductByID(line.ProductID)
			if p == nil {
				return fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
			}
			snapshot := *p
			if line.Price != nil {
				snapshot.Price = *line.Price
			}
			items = append(items, model.CartItem{Product: snapshot, Quantity: line.Quantity})
		}

		subtotal := decimal.Zero
		for _, it := range items {
			subtotal = subtotal.Add(it.LineTotal())
		}

		var coupon *model.Coupon
		if req.CouponCode != "" {
			found, err := ledger.FindCoupon(doc.Coupons, req.CouponCode)
			if err != nil {
				return err
			}
			if err := ledger.ValidateCoupon(found, subtotal, time.Now()); err != nil {
				return err
			}
			coupon = &found
		}

		totals := ledger.PriceSale(items, req.PaidAmount, coupon, req.ManualDiscount, req.TaxPercent)

		if totals.Debt.IsPositive() && req.CustomerID == nil {
			return ErrCreditWithoutCustomer
		}
		if req.CustomerID != nil && doc.CustomerByID(*req.CustomerID) == nil {
			return fmt.Errorf("customer %d: %w", *req.CustomerID, ErrNotFound)
		}

		invoice = model.Invoice{
			ID:                   model.NewID(),
			CustomerID:           req.CustomerID,
			Items:                items,
			Subtotal:             totals.Subtotal,
			DiscountAmount:       totals.CouponDiscount,
			ManualDiscountAmount: totals.ManualDiscount,
			TaxAmount:            totals.TaxAmount,
			Total:                totals.Total,
			PaidAmount:           req.PaidAmount,
			Debt:                 totals.Debt,
			Change:               totals.Change,
			Date:                 time.Now(),
			Type:                 totals.Type,
			Status:               model.StatusCompleted,
		}
		if coupon != nil {
			invoice.CouponCode = coupon.Code
		}

		doc.Invoices = append(doc.Invoices, invoice)
		for _, it := range items {
			if p := doc.ProductByID(it.ID); p != nil {
				p.Stock -= it.Quantity
			}
		}

		message := "تم البيع بنجاح!"
		if totals.Change.IsPositive() {
			message += fmt.Sprintf(" الباقي للعميل: %s ج.م.", totals.Change.StringFixed(2))
		}
		pushToast(doc, s.hub, message, model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return invoice, err
}

// ProcessReturn applies a clamped return. A fully returned invoice or a
// request that clamps to nothing is a silent no-op, not an error.
func (s *salesService) ProcessReturn(invoiceID int64, items []ledger.ReturnRequestItem) (model.Invoice, error) {
	var result model.Invoice
	err := s.ctrl.Update(func(doc *model.Document) error {
		inv := doc.InvoiceByID(invoiceID)
		if inv == nil {
			return fmt.Errorf("invoice %d: %w", invoiceID, ErrNotFound)
		}
		if inv.Status == model.StatusFullyReturned {
			result = *inv
			return nil
		}

		outcome := ledger.ApplyReturn(*inv, items)
		if len(outcome.Accepted) == 0 {
			result = *inv
			return nil
		}

		for _, it := range outcome.Accepted {
			if p := doc.ProductByID(it.ID); p != nil {
				p.Stock += it.Quantity
			}
		}
		inv.ReturnedItems = outcome.ReturnedItems
		inv.Status = outcome.Status
		inv.Debt = outcome.NewDebt
		result = *inv

		pushToast(doc, s.hub, fmt.Sprintf("تم إرجاع منتجات بقيمة %s ج.م.", outcome.ReturnedValue.StringFixed(2)), model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return result, err
}

// ExpandOffer prices a bundle into cart lines. Read-only: the stock check
// happens here, the decrement at sale completion.
func (s *salesService) ExpandOffer(offerID int64) ([]model.CartItem, error) {
	var lines []model.CartItem
	var expandErr error
	err := s.ctrl.View(func(doc *model.Document) {
		for _, offer := range doc.Offers {
			if offer.ID == offerID {
				lines, expandErr = ledger.ExpandOffer(doc.Products, offer)
				return
			}
		}
		expandErr = fmt.Errorf("offer %d: %w", offerID, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return lines, expandErr
}

func (s *salesService) GetInvoices() []model.Invoice {
	var out []model.Invoice
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Invoice, len(doc.Invoices))
		copy(out, doc.Invoices)
	})
	return out
}

func (s *salesService) GetInvoice(id int64) (model.Invoice, error) {
	var inv model.Invoice
	found := false
	s.ctrl.View(func(doc *model.Document) {
		if p := doc.InvoiceByID(id); p != nil {
			inv = *p
			found = true
		}
	})
	if !found {
		return model.Invoice{}, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return inv, nil
}
