package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/storage"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, url := range []string{
		"file://" + filepath.Join(dir, "files"),
		filepath.Join(dir, "bare"),
		"badger://" + filepath.Join(dir, "kv"),
	} {
		store, err := openStore(ctx, url, flagsT{}, zap.NewNop())
		require.NoError(t, err, url)
		require.NoError(t, store.Put(ctx, "a/b", bytes.NewBufferString("x"), storage.IfNotPresent))
		b, err := storage.ReadAll(ctx, store, "a/b")
		require.NoError(t, err)
		assert.Equal(t, "x", string(b))
	}
	require.Len(t, closers, 1)
	require.NoError(t, closeStores())
	assert.Empty(t, closers)

	_, err := openStore(ctx, "ftp://somewhere", flagsT{}, zap.NewNop())
	assert.True(t, errors.Is(err, status.ErrUnsupportedScheme))

	_, err = openStore(ctx, "s3://", flagsT{}, zap.NewNop())
	assert.True(t, errors.Is(err, status.ErrInvalidResource))
}

func TestSeparateBlobStore(t *testing.T) {
	dir := t.TempDir()
	var flags flagsT
	flags.root.logLevel = "none"
	flags.root.store = "file://" + filepath.Join(dir, "meta")
	flags.root.blobs = "file://" + filepath.Join(dir, "blobs")

	store, _, err := paramsToBOMStore(context.Background(), flags)
	require.NoError(t, err)
	assert.Contains(t, store.String(), "+")

	flags.root.blobs = flags.root.store
	store, _, err = paramsToBOMStore(context.Background(), flags)
	require.NoError(t, err)
	assert.NotContains(t, store.String(), "+")
}
