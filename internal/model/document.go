package model

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are stored as plain JSON numbers in the data file, matching
	// the documents written by earlier versions of the app.
	decimal.MarshalJSONWithoutQuotes = true
}

// Document is the whole business dataset. It is held in memory as the single
// source of truth and persisted as one JSON object by the storage layer.
type Document struct {
	Products         []Product         `json:"products"`
	Customers        []Customer        `json:"customers"`
	Suppliers        []Supplier        `json:"suppliers"`
	Invoices         []Invoice         `json:"invoices"`
	Payments         []Payment         `json:"payments"`
	PurchaseInvoices []PurchaseInvoice `json:"purchaseInvoices"`
	SupplierPayments []SupplierPayment `json:"supplierPayments"`
	Expenses         []Expense         `json:"expenses"`
	Offers           []Offer           `json:"offers"`
	Coupons          []Coupon          `json:"coupons"`
	Settings         Settings          `json:"settings"`
	Notifications    []Notification    `json:"notifications,omitempty"`

	// Toasts are transient UI notices. They live in memory only and are
	// stripped before every save and export.
	Toasts []Toast `json:"toasts,omitempty"`
}

// DefaultDocument returns an empty dataset with default settings. Loading
// merges persisted data over this value, so keys missing from older data
// files fall back to these defaults.
func DefaultDocument() *Document {
	return &Document{
		Products:         []Product{},
		Customers:        []Customer{},
		Suppliers:        []Supplier{},
		Invoices:         []Invoice{},
		Payments:         []Payment{},
		PurchaseInvoices: []PurchaseInvoice{},
		SupplierPayments: []SupplierPayment{},
		Expenses:         []Expense{},
		Offers:           []Offer{},
		Coupons:          []Coupon{},
		Settings:         DefaultSettings(),
	}
}

// ProductByID returns a pointer into the products slice, or nil.
func (d *Document) ProductByID(id int64) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// CustomerByID returns a pointer into the customers slice, or nil.
func (d *Document) CustomerByID(id int64) *Customer {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			return &d.Customers[i]
		}
	}
	return nil
}

// SupplierByID returns a pointer into the suppliers slice, or nil.
func (d *Document) SupplierByID(id int64) *Supplier {
	for i := range d.Suppliers {
		if d.Suppliers[i].ID == id {
			return &d.Suppliers[i]
		}
	}
	return nil
}

// InvoiceByID returns a pointer into the invoices slice, or nil.
func (d *Document) InvoiceByID(id int64) *Invoice {
	for i := range d.Invoices {
		if d.Invoices[i].ID == id {
			return &d.Invoices[i]
		}
	}
	return nil
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID generates an entity id from the millisecond epoch, bumped when two
// ids are requested within the same millisecond. Existing data files already
// use millisecond timestamps as ids, so new ids stay in the same keyspace.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
