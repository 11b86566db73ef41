package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// --- DTOs ---

type ProductRequest struct {
	Name          string            `json:"name" binding:"required"`
	Category      string            `json:"category"`
	Price         decimal.Decimal   `json:"price"`
	PurchasePrice decimal.Decimal   `json:"purchasePrice"`
	Stock         int               `json:"stock"`
	Barcode       string            `json:"barcode"`
	ImageURL      string            `json:"imageUrl"`
	ExpiryDate    string            `json:"expiryDate"`
	CustomFields  map[string]string `json:"customFields"`
}

type PurchaseItemRequest struct {
	ProductID     *int64          `json:"productId"`
	Name          string          `json:"name" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

type RecordPurchaseRequest struct {
	SupplierID int64                 `json:"supplierId" binding:"required"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	AmountPaid decimal.Decimal       `json:"amountPaid"`
}

// PurchaseResult carries the stored invoice plus the lines that matched no
// registered product; the UI offers to run product creation for those.
type PurchaseResult struct {
	Invoice  model.PurchaseInvoice       `json:"invoice"`
	NewItems []model.PurchaseInvoiceItem `json:"newItems,omitempty"`
}

// --- Interface ---

type InventoryService interface {
	ListProducts(search string) []model.Product
	GetProduct(id int64) (model.Product, error)
	CreateProduct(req ProductRequest) (model.Product, error)
	UpdateProduct(id int64, req ProductRequest) (model.Product, error)
	DeleteProducts(ids []int64) error
	RecordPurchaseInvoice(req RecordPurchaseRequest) (PurchaseResult, error)
	ListPurchaseInvoices(supplierID int64) []model.PurchaseInvoice
}

type inventoryService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewInventoryService(ctrl *store.Controller, hub *ws.Hub) InventoryService {
	return &inventoryService{ctrl: ctrl, hub: hub}
}

// --- Implementation ---

func (s *inventoryService) ListProducts(search string) []model.Product {
	var out []model.Product
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Product, 0, len(doc.Products))
		for _, p := range doc.Products {
			if search == "" ||
				strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) ||
				p.Barcode == search {
				out = append(out, p)
			}
		}
	})
	return out
}

func (s *inventoryService) GetProduct(id int64) (model.Product, error) {
	var product model.Product
	found := false
	s.ctrl.View(func(doc *model.Document) {
		if p := doc.ProductByID(id); p != nil {
			product = *p
			found = true
		}
	})
	if !found {
		return model.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, nil
}

func (s *inventoryService) CreateProduct(req ProductRequest) (model.Product, error) {
	var product model.Product
	err := s.ctrl.Update(func(doc *model.Document) error {
		product = model.Product{
			ID:            model.NewID(),
			Name:          req.Name,
			Category:      req.Category,
			Price:         req.Price,
			PurchasePrice: req.PurchasePrice,
			Stock:         req.Stock,
			Barcode:       req.Barcode,
			ImageURL:      req.ImageURL,
			ExpiryDate:    req.ExpiryDate,
			CustomFields:  req.CustomFields,
		}
		// Newest first, matching the product list ordering of the UI
		doc.Products = append([]model.Product{product}, doc.Products...)
		pushToast(doc, s.hub, "تم حفظ المنتج بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return product, err
}

func (s *inventoryService) UpdateProduct(id int64, req ProductRequest) (model.Product, error) {
	var product model.Product
	err := s.ctrl.Update(func(doc *model.Document) error {
		p := doc.ProductByID(id)
		if p == nil {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		*p = model.Product{
			ID:            id,
			Name:          req.Name,
			Category:      req.Category,
			Price:         req.Price,
			PurchasePrice: req.PurchasePrice,
			Stock:         req.Stock,
			Barcode:       req.Barcode,
			ImageURL:      req.ImageURL,
			ExpiryDate:    req.ExpiryDate,
			CustomFields:  req.CustomFields,
		}
		product = *p
		pushToast(doc, s.hub, "تم حفظ المنتج بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return product, err
}

// DeleteProducts removes products by id. Historical invoices keep their
// denormalized line snapshots, so no cascade happens.
func (s *inventoryService) DeleteProducts(ids []int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		drop := make(map[int64]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}
		kept := doc.Products[:0]
		for _, p := range doc.Products {
			if !drop[p.ID] {
				kept = append(kept, p)
			}
		}
		doc.Products = kept
		pushToast(doc, s.hub, "تم حذف المنتج بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
}

// RecordPurchaseInvoice stores the purchase and restocks lines linked to a
// registered product. Unlinked lines are returned to the caller; products
// are never auto-created here.
func (s *inventoryService) RecordPurchaseInvoice(req RecordPurchaseRequest) (PurchaseResult, error) {
	var result PurchaseResult
	err := s.ctrl.Update(func(doc *model.Document) error {
		if doc.SupplierByID(req.SupplierID) == nil {
			return fmt.Errorf("supplier %d: %w", req.SupplierID, ErrNotFound)
		}

		items := make([]model.PurchaseInvoiceItem, 0, len(req.Items))
		total := decimal.Zero
		for _, it := range req.Items {
			items = append(items, model.PurchaseInvoiceItem{
				ProductID:     it.ProductID,
				Name:          it.Name,
				Quantity:      it.Quantity,
				PurchasePrice: it.PurchasePrice,
			})
			total = total.Add(it.PurchasePrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		debt := total.Sub(req.AmountPaid)
		if debt.IsNegative() {
			debt = decimal.Zero
		}
		invoice := model.PurchaseInvoice{
			ID:         model.NewID(),
			SupplierID: req.SupplierID,
			Items:      items,
			Total:      total,
			AmountPaid: req.AmountPaid,
			Debt:       debt,
			Date:       time.Now(),
		}
		doc.PurchaseInvoices = append(doc.PurchaseInvoices, invoice)

		result = PurchaseResult{Invoice: invoice}
		for _, it := range items {
			if it.ProductID == nil {
				result.NewItems = append(result.NewItems, it)
				continue
			}
			if p := doc.ProductByID(*it.ProductID); p != nil {
				p.Stock += it.Quantity
			}
		}

		pushToast(doc, s.hub, "تم تسجيل فاتورة الشراء بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return result, err
}

func (s *inventoryService) ListPurchaseInvoices(supplierID int64) []model.PurchaseInvoice {
	var out []model.PurchaseInvoice
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.PurchaseInvoice, 0, len(doc.PurchaseInvoices))
		for _, pi := range doc.PurchaseInvoices {
			if supplierID == 0 || pi.SupplierID == supplierID {
				out = append(out, pi)
			}
		}
	})
	return out
}
