package badger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.GetProperty(ctx, "kbIndex_v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetProperty(ctx, "kbIndex_v1", "one"))
	require.NoError(t, store.SetProperty(ctx, "kbIndex_v1", "two"))

	val, ok, err := store.GetProperty(ctx, "kbIndex_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", val)

	require.NoError(t, store.DeleteProperty(ctx, "kbIndex_v1"))
	_, ok, err = store.GetProperty(ctx, "kbIndex_v1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(store.Path(), "badger"))
	require.NoError(t, store.SetProperty(ctx, "k", "v"))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	val, ok, err := store.GetProperty(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestStore_LargeValue(t *testing.T) {
	ctx := context.Background()
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	big := strings.Repeat("x", 2<<20)
	require.NoError(t, store.SetProperty(ctx, "big", big))

	val, _, err := store.GetProperty(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, big, val)
}
