package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	documentKey = "appData"
	dataDirKey  = "dataDir"
)

// KVRecord is one row of the embedded key-value table.
type KVRecord struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value []byte
}

// TableName overrides the gorm default.
func (KVRecord) TableName() string { return "kv_records" }

// KVStore is an embedded sqlite key-value store. Besides backing
// KVBackend, it remembers the authorized data directory across sessions.
type KVStore struct {
	db *gorm.DB
}

// OpenKVStore opens (or creates) the sqlite file and migrates the table.
func OpenKVStore(path string) (*KVStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open embedded store: %w", err)
	}
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("migrate embedded store: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Get returns the value under key, or ErrNotFound.
func (s *KVStore) Get(key string) ([]byte, error) {
	var rec KVRecord
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// Put upserts the value under key.
func (s *KVStore) Put(key string, value []byte) error {
	rec := KVRecord{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// RememberedDir returns the data directory authorized in a previous
// session, or "" when none was stored.
func (s *KVStore) RememberedDir() string {
	value, err := s.Get(dataDirKey)
	if err != nil {
		return ""
	}
	return string(value)
}

// RememberDir stores the authorized data directory for future sessions.
func (s *KVStore) RememberDir(dir string) error {
	return s.Put(dataDirKey, []byte(dir))
}

// KVBackend stores the whole document as one value in the embedded store.
// No permission step is needed; it is the fallback backend.
type KVBackend struct {
	store *KVStore
}

// NewKVBackend wraps an open KVStore.
func NewKVBackend(store *KVStore) *KVBackend {
	return &KVBackend{store: store}
}

func (b *KVBackend) Name() string { return "embedded" }

func (b *KVBackend) Load() ([]byte, error) {
	return b.store.Get(documentKey)
}

func (b *KVBackend) Save(data []byte) error {
	if err := b.store.Put(documentKey, data); err != nil {
		return fmt.Errorf("write embedded document: %w", err)
	}
	return nil
}
