package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

func TestMemory(t *testing.T) {
	testStoreBehavior(t, NewMemory())
}

func TestMemoryScanOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, m.Put(ctx, Foods, record.Record{"id": id}))
	}
	// overwrite keeps the original position
	require.NoError(t, m.Put(ctx, Foods, record.Record{"id": "c", "isSweet": true}))
	require.NoError(t, m.Delete(ctx, Foods, "a"))

	all, err := m.Scan(ctx, Foods)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].ID())
	assert.Equal(t, "b", all[1].ID())
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := record.Record{"id": "apple", "isSweet": true}
	require.NoError(t, m.Put(ctx, Foods, in))
	in["isSweet"] = false

	got, err := m.Get(ctx, Foods, "apple")
	require.NoError(t, err)
	assert.Equal(t, true, got["isSweet"])

	got["isSweet"] = false
	again, err := m.Get(ctx, Foods, "apple")
	require.NoError(t, err)
	assert.Equal(t, true, again["isSweet"])
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory().Scan(ctx, Foods)
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeStorage))
}
