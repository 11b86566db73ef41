package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/model"
)

func TestBackup_ExportFilename(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewBackupService(ctrl, nil)

	filename, data, err := svc.Export()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "alkhaled-backup-"))
	assert.True(t, strings.HasSuffix(filename, ".json"))
	assert.Contains(t, filename, time.Now().Format("2006-01-02"))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range requiredKeys {
		assert.Contains(t, raw, key)
	}
}

func TestBackup_ImportRejectsMissingKeys(t *testing.T) {
	ctrl := newTestController(t)
	seedProducts(t, ctrl, model.Product{ID: 1, Name: "keep me"})
	svc := NewBackupService(ctrl, nil)

	err := svc.Import([]byte(`{"products": [], "customers": []}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	err = svc.Import([]byte(`not json at all`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	// The dataset is untouched after a rejected import.
	ctrl.View(func(doc *model.Document) {
		require.Len(t, doc.Products, 1)
		assert.Equal(t, "keep me", doc.Products[0].Name)
	})
}

func TestBackup_RoundTrip(t *testing.T) {
	source := newTestController(t)
	seedProducts(t, source, model.Product{ID: 1, Name: "tea", Price: dec(10), Stock: 3})
	seedCustomer(t, source, model.Customer{ID: 2, Name: "omar"})

	_, data, err := NewBackupService(source, nil).Export()
	require.NoError(t, err)

	target := newTestController(t)
	require.NoError(t, NewBackupService(target, nil).Import(data))

	target.View(func(doc *model.Document) {
		require.Len(t, doc.Products, 1)
		assert.Equal(t, "tea", doc.Products[0].Name)
		require.Len(t, doc.Customers, 1)
		assert.Equal(t, "omar", doc.Customers[0].Name)
	})
}

func TestBackup_ImportFillsMissingOptionalKeys(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewBackupService(ctrl, nil)

	// An older backup without offers/coupons/expenses still imports; the
	// missing keys come from defaults.
	minimal := `{
		"products": [{"id": 1, "name": "tea", "price": 10, "purchasePrice": 5, "stock": 2}],
		"customers": [],
		"suppliers": [],
		"invoices": [],
		"settings": {"lowStockThreshold": 3, "expiryWarningDays": 7, "customerDebtLimit": 500}
	}`
	require.NoError(t, svc.Import([]byte(minimal)))

	ctrl.View(func(doc *model.Document) {
		assert.Equal(t, 3, doc.Settings.LowStockThreshold)
		assert.NotNil(t, doc.Offers)
		assert.NotNil(t, doc.Coupons)
	})
}

func TestBackup_ImportRederivesNotifications(t *testing.T) {
	ctrl := newTestController(t)
	svc := NewBackupService(ctrl, nil)

	withLowStock := `{
		"products": [{"id": 1, "name": "tea", "price": 10, "purchasePrice": 5, "stock": 2}],
		"customers": [],
		"suppliers": [],
		"invoices": [],
		"settings": {"lowStockThreshold": 10, "expiryWarningDays": 30, "customerDebtLimit": 1000}
	}`
	require.NoError(t, svc.Import([]byte(withLowStock)))

	ctrl.View(func(doc *model.Document) {
		require.Len(t, doc.Notifications, 1)
		assert.Equal(t, "low-stock-1", doc.Notifications[0].ID)
	})
}
