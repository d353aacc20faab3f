package memory

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewPropertyStore()

	_, ok, err := store.GetProperty(ctx, "kbIndex_v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetProperty(ctx, "kbIndex_v1", `{"a":1}`))
	require.NoError(t, store.SetProperty(ctx, "kbIndex_v1", `{"a":2}`))

	val, ok, err := store.GetProperty(ctx, "kbIndex_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, val)

	require.NoError(t, store.DeleteProperty(ctx, "kbIndex_v1"))
	require.NoError(t, store.DeleteProperty(ctx, "kbIndex_v1"))

	_, ok, _ = store.GetProperty(ctx, "kbIndex_v1")
	assert.False(t, ok)
	assert.NoError(t, store.Close())
}

func TestPropertyStore_ReadersSeeWholeValues(t *testing.T) {
	ctx := context.Background()
	store := NewPropertyStore()
	oldVal := strings.Repeat("a", 1024)
	newVal := strings.Repeat("b", 2048)
	require.NoError(t, store.SetProperty(ctx, "k", oldVal))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = store.SetProperty(ctx, "k", newVal)
			_ = store.SetProperty(ctx, "k", oldVal)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			v, _, _ := store.GetProperty(ctx, "k")
			assert.True(t, v == oldVal || v == newVal)
		}
	}()
	wg.Wait()
}
