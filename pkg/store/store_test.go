package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// testStoreBehavior runs the behaviour every backend must share.
func testStoreBehavior(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing is not found", func(t *testing.T) {
		_, err := s.Get(ctx, Users, "nobody")
		require.Error(t, err)
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, Users, record.Record{"id": "User123", "sweet": 3, "salty": 0}))

		got, err := s.Get(ctx, Users, "User123")
		require.NoError(t, err)
		assert.Equal(t, "User123", got.ID())
		assert.Equal(t, 3, record.Weight(got["sweet"]))
		assert.Equal(t, 0, record.Weight(got["salty"]))
	})

	t.Run("put overwrites by id", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, Foods, record.Record{"id": "apple", "isSweet": false}))
		require.NoError(t, s.Put(ctx, Foods, record.Record{"id": "apple", "isSweet": true}))

		got, err := s.Get(ctx, Foods, "apple")
		require.NoError(t, err)
		assert.True(t, record.Truthy(got["isSweet"]))
	})

	t.Run("scan returns every record", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, Foods, record.Record{"id": "pretzel", "isSalty": true}))
		require.NoError(t, s.Put(ctx, Foods, record.Record{"id": "lemon", "isSour": true}))

		all, err := s.Scan(ctx, Foods)
		require.NoError(t, err)

		ids := make([]string, 0, len(all))
		for _, r := range all {
			ids = append(ids, r.ID())
		}
		assert.ElementsMatch(t, []string{"apple", "pretzel", "lemon"}, ids)
	})

	t.Run("delete removes and tolerates missing", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, Foods, "lemon"))
		require.NoError(t, s.Delete(ctx, Foods, "lemon"))

		_, err := s.Get(ctx, Foods, "lemon")
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
	})

	t.Run("empty id is a parse error", func(t *testing.T) {
		err := s.Put(ctx, Foods, record.Record{"name": "no id"})
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeParse))
	})

	t.Run("unknown collection is rejected", func(t *testing.T) {
		_, err := s.Scan(ctx, Collection("drinks"))
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
	})
}

func TestParseCollection(t *testing.T) {
	tests := []struct {
		in      string
		want    Collection
		wantErr bool
	}{
		{"", Foods, false},
		{"foods", Foods, false},
		{" Users ", Users, false},
		{"drinks", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{
		"":         BackendMemory,
		"memory":   BackendMemory,
		"DynamoDB": BackendDynamoDB,
		"redis":    BackendRedis,
	} {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBackend("postgres")
	assert.Error(t, err)
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(s) })

	testStoreBehavior(t, s)
}
