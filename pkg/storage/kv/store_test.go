package kv

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/storage"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t testing.TB) storage.Store {
	t.Helper()

	store, closer, err := New("", InMemory(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })
	return store
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	assert.Equal(t, "badger@memory", store.String())

	require.NoError(t, store.Put(ctx, "configs/p/v/dev/config.yaml", bytes.NewBufferString("name: dev"), storage.IfNotPresent))

	err := store.Put(ctx, "configs/p/v/dev/config.yaml", bytes.NewBufferString("name: other"), storage.IfNotPresent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	has, err := store.Has(ctx, "configs/p/v/dev/config.yaml")
	require.NoError(t, err)
	assert.True(t, has)

	b, err := storage.ReadAll(ctx, store, "configs/p/v/dev/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: dev", string(b))

	_, err = store.Get(ctx, "configs/p/v/missing/config.yaml")
	assert.True(t, errors.Is(err, status.ErrNotExists))

	require.NoError(t, store.Delete(ctx, "configs/p/v/dev/config.yaml"))
	has, err = store.Has(ctx, "configs/p/v/dev/config.yaml")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestKVStoreConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, fmt.Sprintf("files/p/v/rtl/lib/_head/f%02d", i), bytes.NewBufferString("x"), storage.OverWrite))
		}(i)
	}
	wg.Wait()

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 20)

	page, next, err := store.KeysPrefix(ctx, "", "files/p/v/", "", 15)
	require.NoError(t, err)
	assert.Len(t, page, 15)
	assert.Equal(t, "files/p/v/rtl/lib/_head/f14", next)

	folded, err := storage.AllKeysPrefix(ctx, store, "files/p/v/", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"files/p/v/rtl/"}, folded)

	require.NoError(t, store.Clear(ctx))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
