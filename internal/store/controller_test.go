package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alkhaled/internal/model"
)

// stubBackend records every save for assertions on write coalescing.
type stubBackend struct {
	mu       sync.Mutex
	saves    [][]byte
	loadData []byte
	loadErr  error
	saveErr  error
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Load() ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.loadData == nil {
		return nil, ErrNotFound
	}
	return s.loadData, nil
}

func (s *stubBackend) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, data)
	return nil
}

func (s *stubBackend) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *stubBackend) lastSave() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saves) == 0 {
		return nil
	}
	return s.saves[len(s.saves)-1]
}

func newStubController(t *testing.T, stub *stubBackend, opts Options) *Controller {
	t.Helper()
	c := NewController(openTestKV(t), opts)
	c.backend = stub
	require.NoError(t, c.Start())
	t.Cleanup(c.Close)
	return c
}

func TestController_StartEmptyDataset(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: time.Hour})

	assert.Equal(t, StatusReady, c.Status())
	err := c.View(func(doc *model.Document) {
		assert.Empty(t, doc.Products)
		assert.Equal(t, 10, doc.Settings.LowStockThreshold)
	})
	require.NoError(t, err)
}

func TestController_FirstLoadIsNotDirty(t *testing.T) {
	stub := &stubBackend{loadData: []byte(`{"products":[]}`)}
	c := newStubController(t, stub, Options{Debounce: 10 * time.Millisecond})

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, stub.saveCount(), "loading must not trigger a save")
	_ = c
}

func TestController_DebounceCoalescesWrites(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: 60 * time.Millisecond})

	for i := 0; i < 5; i++ {
		err := c.Update(func(doc *model.Document) error {
			doc.Products = append(doc.Products, model.Product{ID: int64(i + 1), Name: "p"})
			return nil
		})
		require.NoError(t, err)
	}

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 1, stub.saveCount(), "burst of updates must coalesce into one write")

	var saved model.Document
	require.NoError(t, json.Unmarshal(stub.lastSave(), &saved))
	assert.Len(t, saved.Products, 5)
}

func TestController_ToastsNeverPersisted(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: 10 * time.Millisecond})

	err := c.Update(func(doc *model.Document) error {
		doc.Toasts = append(doc.Toasts, model.Toast{ID: "t", Message: "hi"})
		doc.Products = append(doc.Products, model.Product{ID: 1, Name: "p"})
		return nil
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 1, stub.saveCount())

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stub.lastSave(), &raw))
	_, hasToasts := raw["toasts"]
	assert.False(t, hasToasts)
}

func TestController_UpdateErrorLeavesDocumentClean(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: 10 * time.Millisecond})

	err := c.Update(func(doc *model.Document) error {
		return os.ErrInvalid
	})
	assert.Error(t, err)

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, stub.saveCount(), "a failed mutation must not schedule a save")
}

func TestController_CorruptDocumentFails(t *testing.T) {
	stub := &stubBackend{loadData: []byte(`{"products": [broken`)}
	c := NewController(openTestKV(t), Options{})
	c.backend = stub

	err := c.Start()
	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.Equal(t, StatusFailed, c.Status())
	assert.ErrorIs(t, c.LoadError(), ErrCorruptDocument)

	assert.ErrorIs(t, c.Update(func(doc *model.Document) error { return nil }), ErrNotReady)
}

func TestController_NeedsPermissionWithoutBackend(t *testing.T) {
	c := NewController(openTestKV(t), Options{})
	require.NoError(t, c.Start())

	assert.Equal(t, StatusNeedsPermission, c.Status())
	assert.ErrorIs(t, c.View(func(doc *model.Document) {}), ErrNotReady)

	// Opting into embedded storage unblocks the session.
	require.NoError(t, c.UseEmbeddedStorage())
	assert.Equal(t, StatusReady, c.Status())
	assert.Equal(t, "embedded", c.BackendName())
	t.Cleanup(c.Close)
}

func TestController_RequestDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	c := NewController(openTestKV(t), Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, c.Start())
	require.Equal(t, StatusNeedsPermission, c.Status())

	require.NoError(t, c.RequestDirectoryAccess(dir))
	assert.Equal(t, StatusReady, c.Status())
	assert.Equal(t, "file", c.BackendName())

	err := c.Update(func(doc *model.Document) error {
		doc.Products = append(doc.Products, model.Product{ID: 1, Name: "tea"})
		return nil
	})
	require.NoError(t, err)
	c.Close()

	data, err := os.ReadFile(filepath.Join(dir, DataFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tea")
}

func TestController_RequestDirectoryAccessDenied(t *testing.T) {
	c := NewController(openTestKV(t), Options{})
	require.NoError(t, c.Start())

	err := c.RequestDirectoryAccess(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, StatusNeedsPermission, c.Status())
}

func TestController_RemembersDirectoryAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	meta := openTestKV(t)

	first := NewController(meta, Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, first.Start())
	require.NoError(t, first.RequestDirectoryAccess(dir))
	require.NoError(t, first.Update(func(doc *model.Document) error {
		doc.Products = append(doc.Products, model.Product{ID: 1, Name: "tea"})
		return nil
	}))
	first.Close()

	second := NewController(meta, Options{})
	require.NoError(t, second.Start())
	assert.Equal(t, StatusReady, second.Status())
	assert.Equal(t, "file", second.BackendName())
	err := second.View(func(doc *model.Document) {
		require.Len(t, doc.Products, 1)
		assert.Equal(t, "tea", doc.Products[0].Name)
	})
	require.NoError(t, err)
	second.Close()
}

func TestController_CloseFlushesPendingWrite(t *testing.T) {
	stub := &stubBackend{}
	c := NewController(openTestKV(t), Options{Debounce: time.Hour})
	c.backend = stub
	require.NoError(t, c.Start())

	require.NoError(t, c.Update(func(doc *model.Document) error {
		doc.Products = append(doc.Products, model.Product{ID: 1, Name: "p"})
		return nil
	}))
	require.Zero(t, stub.saveCount())

	c.Close()
	assert.Equal(t, 1, stub.saveCount())
}

func TestController_SaveErrorKeepsDirtyAndNotifies(t *testing.T) {
	stub := &stubBackend{saveErr: os.ErrPermission}
	notified := make(chan error, 1)
	c := NewController(openTestKV(t), Options{
		Debounce:    10 * time.Millisecond,
		OnSaveError: func(err error) { notified <- err },
	})
	c.backend = stub
	require.NoError(t, c.Start())

	require.NoError(t, c.Update(func(doc *model.Document) error {
		doc.Products = append(doc.Products, model.Product{ID: 1})
		return nil
	}))

	select {
	case err := <-notified:
		assert.ErrorIs(t, err, os.ErrPermission)
	case <-time.After(time.Second):
		t.Fatal("save error callback never fired")
	}

	// Memory stays authoritative after the failed write.
	err := c.View(func(doc *model.Document) {
		assert.Len(t, doc.Products, 1)
	})
	require.NoError(t, err)
}

func TestController_ReplaceRederivesNotifications(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: time.Hour})

	next := model.DefaultDocument()
	next.Products = []model.Product{{ID: 1, Name: "low", Stock: 2}}
	require.NoError(t, c.Replace(next))

	err := c.View(func(doc *model.Document) {
		require.Len(t, doc.Notifications, 1)
		assert.Equal(t, "low-stock-1", doc.Notifications[0].ID)
	})
	require.NoError(t, err)
}

func TestController_EncodePersistedStripsToasts(t *testing.T) {
	stub := &stubBackend{}
	c := newStubController(t, stub, Options{Debounce: time.Hour})

	require.NoError(t, c.Update(func(doc *model.Document) error {
		doc.Toasts = append(doc.Toasts, model.Toast{ID: "t"})
		return nil
	}))

	data, err := c.EncodePersisted()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasToasts := raw["toasts"]
	assert.False(t, hasToasts)
	assert.Contains(t, raw, "products")
	assert.Contains(t, raw, "settings")
}
