package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/model"
)

func testDoc() *model.Document {
	doc := model.DefaultDocument()
	doc.Settings.LowStockThreshold = 10
	doc.Settings.ExpiryWarningDays = 30
	doc.Settings.CustomerDebtLimit = decimal.NewFromInt(1000)
	return doc
}

func TestDeriveNotifications_LowStock(t *testing.T) {
	doc := testDoc()
	doc.Products = []model.Product{
		{ID: 1, Name: "low", Stock: 5},
		{ID: 2, Name: "fine", Stock: 50},
		{ID: 3, Name: "out", Stock: 0}, // out of stock is not "low"
	}

	got := DeriveNotifications(doc, time.Now())
	require.Len(t, got, 1)
	assert.Equal(t, "low-stock-1", got[0].ID)
	assert.Equal(t, model.NotifyLowStock, got[0].Type)
}

func TestDeriveNotifications_ExpiryWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	doc := testDoc()
	doc.Products = []model.Product{
		{ID: 1, Name: "soon", Stock: 100, ExpiryDate: "2026-09-10"},
		{ID: 2, Name: "far", Stock: 100, ExpiryDate: "2027-01-01"},
		{ID: 3, Name: "past", Stock: 100, ExpiryDate: "2026-08-01"},
	}

	got := DeriveNotifications(doc, now)
	require.Len(t, got, 1)
	assert.Equal(t, "expiry-1", got[0].ID)
	assert.Equal(t, model.NotifyExpirySoon, got[0].Type)
}

func TestDeriveNotifications_DebtLimit(t *testing.T) {
	doc := testDoc()
	doc.Customers = []model.Customer{{ID: 1, Name: "heavy"}, {ID: 2, Name: "light"}}
	doc.Invoices = []model.Invoice{
		{ID: 10, CustomerID: custID(1), Debt: dec(1500)},
		{ID: 11, CustomerID: custID(2), Debt: dec(100)},
	}

	got := DeriveNotifications(doc, time.Now())
	require.Len(t, got, 1)
	assert.Equal(t, "debt-limit-1", got[0].ID)
	assert.Equal(t, model.NotifyDebtLimit, got[0].Type)
}

func TestDeriveNotifications_ZeroLimitDisablesDebtAlerts(t *testing.T) {
	doc := testDoc()
	doc.Settings.CustomerDebtLimit = decimal.Zero
	doc.Customers = []model.Customer{{ID: 1, Name: "heavy"}}
	doc.Invoices = []model.Invoice{{ID: 10, CustomerID: custID(1), Debt: dec(99999)}}

	assert.Empty(t, DeriveNotifications(doc, time.Now()))
}

func TestDeriveNotifications_ReadFlagSurvivesRederivation(t *testing.T) {
	doc := testDoc()
	doc.Products = []model.Product{{ID: 1, Name: "low", Stock: 5}}

	first := DeriveNotifications(doc, time.Now())
	require.Len(t, first, 1)
	first[0].Read = true
	doc.Notifications = first

	second := DeriveNotifications(doc, time.Now())
	require.Len(t, second, 1)
	assert.True(t, second[0].Read, "read flag must carry over for the same condition id")
}

func TestDeriveNotifications_ConditionClearedDropsNotification(t *testing.T) {
	doc := testDoc()
	doc.Products = []model.Product{{ID: 1, Name: "low", Stock: 5}}
	doc.Notifications = DeriveNotifications(doc, time.Now())

	doc.Products[0].Stock = 100
	assert.Empty(t, DeriveNotifications(doc, time.Now()))
}
