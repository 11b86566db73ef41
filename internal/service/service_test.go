package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/model"
	"alkhaled/internal/store"
)

// newTestController opens an embedded-backed controller with a debounce long
// enough that tests never race a background save.
func newTestController(t *testing.T) *store.Controller {
	t.Helper()
	meta, err := store.OpenKVStore(filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	ctrl := store.NewController(meta, store.Options{AutoEmbedded: true, Debounce: time.Hour})
	require.NoError(t, ctrl.Start())
	t.Cleanup(ctrl.Close)
	return ctrl
}

func seedProducts(t *testing.T, ctrl *store.Controller, products ...model.Product) {
	t.Helper()
	require.NoError(t, ctrl.Update(func(doc *model.Document) error {
		doc.Products = append(doc.Products, products...)
		return nil
	}))
}

func seedCustomer(t *testing.T, ctrl *store.Controller, c model.Customer) {
	t.Helper()
	require.NoError(t, ctrl.Update(func(doc *model.Document) error {
		doc.Customers = append(doc.Customers, c)
		return nil
	}))
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func ptr[T any](v T) *T { return &v }
