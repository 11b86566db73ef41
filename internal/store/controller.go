package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
)

// Status is the controller lifecycle state.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusNeedsPermission Status = "needs-permission"
	StatusReady           Status = "ready"
	StatusFailed          Status = "failed"
)

// DefaultDebounce is how long writes coalesce before hitting the backend.
const DefaultDebounce = time.Second

// Options tune the controller.
type Options struct {
	// Debounce overrides the write coalescing window. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	// AutoEmbedded skips the permission step and goes straight to the
	// embedded backend, like platforms without directory access.
	AutoEmbedded bool

	// OnSaveError is invoked outside the lock when a debounced save
	// fails. The failure is a warning; memory stays authoritative and
	// the next mutation retries.
	OnSaveError func(error)
}

// Controller owns the in-memory dataset. It selects a backend at session
// start, guards every mutation behind its lock, and writes the document
// back with a debounce so bursts coalesce into one save.
type Controller struct {
	mu       sync.Mutex
	doc      *model.Document
	status   Status
	loadErr  error
	backend  Backend
	meta     *KVStore
	debounce time.Duration
	timer    *time.Timer
	dirty    bool

	onSaveError func(error)
}

// NewController wires the controller to the embedded store, which doubles
// as the session memory for the authorized directory.
func NewController(meta *KVStore, opts Options) *Controller {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	c := &Controller{
		status:      StatusLoading,
		meta:        meta,
		debounce:    debounce,
		onSaveError: opts.OnSaveError,
	}
	if opts.AutoEmbedded {
		c.backend = NewKVBackend(meta)
	}
	return c
}

// Start selects the backend and loads the document. A remembered directory
// that still passes the permission check selects the file backend; without
// one the controller parks in needs-permission until the user either picks
// a directory or opts into embedded storage.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		if dir := c.meta.RememberedDir(); dir != "" {
			if err := VerifyDirectoryAccess(dir); err == nil {
				c.backend = &FileBackend{dir: dir}
			} else {
				log.Printf("remembered data directory unusable, asking again: %v", err)
			}
		}
	}
	if c.backend == nil {
		c.status = StatusNeedsPermission
		return nil
	}
	return c.loadLocked()
}

// loadLocked reads the document from the active backend, merges it over
// defaults and re-derives notifications. A missing document is a fresh
// dataset; an undecodable one is terminal.
func (c *Controller) loadLocked() error {
	c.status = StatusLoading

	doc := model.DefaultDocument()
	data, err := c.backend.Load()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, doc); jsonErr != nil {
			c.status = StatusFailed
			c.loadErr = fmt.Errorf("%w: %v", ErrCorruptDocument, jsonErr)
			return c.loadErr
		}
	case err == ErrNotFound:
		log.Printf("no data file yet on %s backend, starting empty", c.backend.Name())
	default:
		c.status = StatusFailed
		c.loadErr = err
		return err
	}

	doc.Toasts = nil
	doc.Notifications = ledger.DeriveNotifications(doc, time.Now())
	c.doc = doc
	c.loadErr = nil
	// Freshly loaded data is clean; the first save happens only after a
	// mutation.
	c.dirty = false
	c.status = StatusReady
	log.Printf("dataset loaded from %s backend", c.backend.Name())
	return nil
}

// RequestDirectoryAccess switches to the file backend bound to dir. It is
// the "choose folder" action: valid from needs-permission and from ready
// (explicit mid-session switch), and always forces a full reload.
func (c *Controller) RequestDirectoryAccess(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := VerifyDirectoryAccess(dir); err != nil {
		return err
	}
	if err := c.meta.RememberDir(dir); err != nil {
		log.Printf("could not remember data directory: %v", err)
	}
	c.stopTimerLocked()
	c.backend = &FileBackend{dir: dir}
	return c.loadLocked()
}

// UseEmbeddedStorage opts into the key-value backend instead of granting
// directory access.
func (c *Controller) UseEmbeddedStorage() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.backend = NewKVBackend(c.meta)
	return c.loadLocked()
}

// Status reports the lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// BackendName names the active backend, or "" before selection.
func (c *Controller) BackendName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend == nil {
		return ""
	}
	return c.backend.Name()
}

// LoadError returns the terminal load failure, if any.
func (c *Controller) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Update runs one atomic mutation. The closure must validate and compute
// before touching the document so an error never leaves a partial update
// behind. On success the dataset is marked dirty and one debounced save is
// scheduled.
func (c *Controller) Update(fn func(doc *model.Document) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return ErrNotReady
	}
	if err := fn(c.doc); err != nil {
		return err
	}
	c.dirty = true
	c.scheduleSaveLocked()
	return nil
}

// View runs a read-only closure under the lock. The closure must not
// retain references into the document.
func (c *Controller) View(fn func(doc *model.Document)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return ErrNotReady
	}
	fn(c.doc)
	return nil
}

// Replace swaps in a whole new dataset (import). Notifications are
// re-derived for the new data.
func (c *Controller) Replace(doc *model.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return ErrNotReady
	}
	doc.Toasts = nil
	doc.Notifications = ledger.DeriveNotifications(doc, time.Now())
	c.doc = doc
	c.dirty = true
	c.scheduleSaveLocked()
	return nil
}

// EncodePersisted serializes the persisted subset of the document, pretty
// printed. Transient fields (toasts) are excluded.
func (c *Controller) EncodePersisted() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return nil, ErrNotReady
	}
	return encodePersisted(c.doc)
}

func encodePersisted(doc *model.Document) ([]byte, error) {
	persisted := *doc
	persisted.Toasts = nil
	return json.MarshalIndent(&persisted, "", "  ")
}

// scheduleSaveLocked (re)arms the debounce timer; mutations inside the
// window coalesce into one write.
func (c *Controller) scheduleSaveLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.flush)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.dirty = false
}

// flush writes the document if it is still dirty. A failed save keeps the
// dirty flag so the next mutation retries with a fresh debounce cycle; the
// in-memory dataset stays authoritative either way.
func (c *Controller) flush() {
	c.mu.Lock()
	if !c.dirty || c.status != StatusReady {
		c.mu.Unlock()
		return
	}
	backend := c.backend
	data, err := encodePersisted(c.doc)
	if err == nil {
		c.dirty = false
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("encode document failed: %v", err)
		return
	}
	if err := backend.Save(data); err != nil {
		log.Printf("save to %s backend failed: %v", backend.Name(), err)
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
		if c.onSaveError != nil {
			c.onSaveError(err)
		}
	}
}

// Close flushes any pending dirty write synchronously so an orderly
// shutdown never loses a coalesced save.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.flush()
}
