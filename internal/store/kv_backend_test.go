package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *KVStore {
	t.Helper()
	kv, err := OpenKVStore(filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	return kv
}

func TestKVStore_GetPut(t *testing.T) {
	kv := openTestKV(t)

	_, err := kv.Get("absent")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put("k", []byte("v1")))
	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Upsert overwrites.
	require.NoError(t, kv.Put("k", []byte("v2")))
	got, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestKVStore_RememberDir(t *testing.T) {
	kv := openTestKV(t)

	assert.Empty(t, kv.RememberedDir())
	require.NoError(t, kv.RememberDir("/data/store"))
	assert.Equal(t, "/data/store", kv.RememberedDir())
}

func TestKVBackend_RoundTrip(t *testing.T) {
	b := NewKVBackend(openTestKV(t))

	_, err := b.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Save([]byte(`{"products":[]}`)))
	got, err := b.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[]}`, string(got))
}
