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

type PartnerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CustomerInfo is a customer with their derived balance.
type CustomerInfo struct {
	model.Customer
	Balance decimal.Decimal `json:"balance"`
}

// SupplierInfo is a supplier with the business's derived debt to them.
type SupplierInfo struct {
	model.Supplier
	Balance decimal.Decimal `json:"balance"`
}

// CustomerDetail backs the customer page: the derived balance plus the
// transaction history it derives from.
type CustomerDetail struct {
	CustomerInfo
	Invoices []model.Invoice `json:"invoices"`
	Payments []model.Payment `json:"payments"`
}

// SupplierDetail mirrors CustomerDetail for the purchasing side.
type SupplierDetail struct {
	SupplierInfo
	PurchaseInvoices []model.PurchaseInvoice `json:"purchaseInvoices"`
	Payments         []model.SupplierPayment `json:"payments"`
}

// --- Interface ---

type PartnerService interface {
	ListCustomers() []CustomerInfo
	GetCustomer(id int64) (CustomerDetail, error)
	CreateCustomer(req PartnerRequest) (model.Customer, error)
	UpdateCustomer(id int64, req PartnerRequest) (model.Customer, error)
	DeleteCustomers(ids []int64) error
	PayCustomerDebt(customerID int64, amount decimal.Decimal) (model.Payment, error)

	ListSuppliers() []SupplierInfo
	GetSupplier(id int64) (SupplierDetail, error)
	CreateSupplier(req PartnerRequest) (model.Supplier, error)
	UpdateSupplier(id int64, req PartnerRequest) (model.Supplier, error)
	DeleteSuppliers(ids []int64) error
	PaySupplierDebt(supplierID int64, amount decimal.Decimal) (model.SupplierPayment, error)
}

type partnerService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewPartnerService(ctrl *store.Controller, hub *ws.Hub) PartnerService {
	return &partnerService{ctrl: ctrl, hub: hub}
}

// --- Customers ---

func (s *partnerService) ListCustomers() []CustomerInfo {
	var out []CustomerInfo
	s.ctrl.View(func(doc *model.Document) {
		balances := ledger.CustomerBalances(doc.Invoices, doc.Payments)
		out = make([]CustomerInfo, 0, len(doc.Customers))
		for _, c := range doc.Customers {
			out = append(out, CustomerInfo{Customer: c, Balance: balances[c.ID]})
		}
	})
	return out
}

func (s *partnerService) GetCustomer(id int64) (CustomerDetail, error) {
	var detail CustomerDetail
	found := false
	s.ctrl.View(func(doc *model.Document) {
		c := doc.CustomerByID(id)
		if c == nil {
			return
		}
		found = true
		detail.Customer = *c
		detail.Balance = ledger.CustomerBalance(doc.Invoices, doc.Payments, id)
		for _, inv := range doc.Invoices {
			if inv.CustomerID != nil && *inv.CustomerID == id {
				detail.Invoices = append(detail.Invoices, inv)
			}
		}
		for _, p := range doc.Payments {
			if p.CustomerID == id {
				detail.Payments = append(detail.Payments, p)
			}
		}
	})
	if !found {
		return CustomerDetail{}, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return detail, nil
}

func (s *partnerService) CreateCustomer(req PartnerRequest) (model.Customer, error) {
	var customer model.Customer
	err := s.ctrl.Update(func(doc *model.Document) error {
		customer = model.Customer{ID: model.NewID(), Name: req.Name, Phone: req.Phone, Address: req.Address}
		doc.Customers = append([]model.Customer{customer}, doc.Customers...)
		pushToast(doc, s.hub, fmt.Sprintf("تم إضافة العميل %q بنجاح", customer.Name), model.ToastSuccess)
		return nil
	})
	return customer, err
}

func (s *partnerService) UpdateCustomer(id int64, req PartnerRequest) (model.Customer, error) {
	var customer model.Customer
	err := s.ctrl.Update(func(doc *model.Document) error {
		c := doc.CustomerByID(id)
		if c == nil {
			return fmt.Errorf("customer %d: %w", id, ErrNotFound)
		}
		*c = model.Customer{ID: id, Name: req.Name, Phone: req.Phone, Address: req.Address}
		customer = *c
		pushToast(doc, s.hub, "تم حفظ بيانات العميل", model.ToastSuccess)
		return nil
	})
	return customer, err
}

// DeleteCustomers removes customers by id. Invoices and payments keep the
// customer id; rendering tolerates the missing referent.
func (s *partnerService) DeleteCustomers(ids []int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		drop := make(map[int64]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}
		kept := doc.Customers[:0]
		for _, c := range doc.Customers {
			if !drop[c.ID] {
				kept = append(kept, c)
			}
		}
		doc.Customers = kept
		pushToast(doc, s.hub, "تم حذف العملاء بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
}

// PayCustomerDebt appends a payment. Overpayment is allowed and produces a
// negative derived balance.
func (s *partnerService) PayCustomerDebt(customerID int64, amount decimal.Decimal) (model.Payment, error) {
	var payment model.Payment
	err := s.ctrl.Update(func(doc *model.Document) error {
		if doc.CustomerByID(customerID) == nil {
			return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}
		payment = model.Payment{ID: model.NewID(), CustomerID: customerID, Amount: amount, Date: time.Now()}
		doc.Payments = append(doc.Payments, payment)
		pushToast(doc, s.hub, "تم تسجيل الدفعة بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return payment, err
}

// --- Suppliers ---

func (s *partnerService) ListSuppliers() []SupplierInfo {
	var out []SupplierInfo
	s.ctrl.View(func(doc *model.Document) {
		out = make([]SupplierInfo, 0, len(doc.Suppliers))
		for _, sup := range doc.Suppliers {
			out = append(out, SupplierInfo{
				Supplier: sup,
				Balance:  ledger.SupplierBalance(doc.PurchaseInvoices, doc.SupplierPayments, sup.ID),
			})
		}
	})
	return out
}

func (s *partnerService) GetSupplier(id int64) (SupplierDetail, error) {
	var detail SupplierDetail
	found := false
	s.ctrl.View(func(doc *model.Document) {
		sup := doc.SupplierByID(id)
		if sup == nil {
			return
		}
		found = true
		detail.Supplier = *sup
		detail.Balance = ledger.SupplierBalance(doc.PurchaseInvoices, doc.SupplierPayments, id)
		for _, pi := range doc.PurchaseInvoices {
			if pi.SupplierID == id {
				detail.PurchaseInvoices = append(detail.PurchaseInvoices, pi)
			}
		}
		for _, p := range doc.SupplierPayments {
			if p.SupplierID == id {
				detail.Payments = append(detail.Payments, p)
			}
		}
	})
	if !found {
		return SupplierDetail{}, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
	}
	return detail, nil
}

func (s *partnerService) CreateSupplier(req PartnerRequest) (model.Supplier, error) {
	var supplier model.Supplier
	err := s.ctrl.Update(func(doc *model.Document) error {
		supplier = model.Supplier{ID: model.NewID(), Name: req.Name, Phone: req.Phone, Address: req.Address}
		doc.Suppliers = append([]model.Supplier{supplier}, doc.Suppliers...)
		pushToast(doc, s.hub, "تم حفظ بيانات المورد", model.ToastSuccess)
		return nil
	})
	return supplier, err
}

func (s *partnerService) UpdateSupplier(id int64, req PartnerRequest) (model.Supplier, error) {
	var supplier model.Supplier
	err := s.ctrl.Update(func(doc *model.Document) error {
		sup := doc.SupplierByID(id)
		if sup == nil {
			return fmt.Errorf("supplier %d: %w", id, ErrNotFound)
		}
		*sup = model.Supplier{ID: id, Name: req.Name, Phone: req.Phone, Address: req.Address}
		supplier = *sup
		pushToast(doc, s.hub, "تم حفظ بيانات المورد", model.ToastSuccess)
		return nil
	})
	return supplier, err
}

func (s *partnerService) DeleteSuppliers(ids []int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		drop := make(map[int64]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}
		kept := doc.Suppliers[:0]
		for _, sup := range doc.Suppliers {
			if !drop[sup.ID] {
				kept = append(kept, sup)
			}
		}
		doc.Suppliers = kept
		pushToast(doc, s.hub, "تم حذف الموردين بنجاح", model.ToastSuccess)
		return nil
	})
}

func (s *partnerService) PaySupplierDebt(supplierID int64, amount decimal.Decimal) (model.SupplierPayment, error) {
	var payment model.SupplierPayment
	err := s.ctrl.Update(func(doc *model.Document) error {
		if doc.SupplierByID(supplierID) == nil {
			return fmt.Errorf("supplier %d: %w", supplierID, ErrNotFound)
		}
		payment = model.SupplierPayment{ID: model.NewID(), SupplierID: supplierID, Amount: amount, Date: time.Now()}
		doc.SupplierPayments = append(doc.SupplierPayments, payment)
		pushToast(doc, s.hub, "تم تسجيل دفعة للمورد بنجاح", model.ToastSuccess)
		return nil
	})
	return payment, err
}
