package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsiewert/flavor-buddy/pkg/config"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

func newOpsApp(t *testing.T) (*App, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	a, err := New(context.Background(), config.Default(), "test", WithStore(m))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, m
}

func TestSeedFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		target string
	}{
		{"default source", `{"target":"foods"}`, "foods"},
		{"named default", `{"target":"users","source":"default"}`, "users"},
		{"named embedded", `{"target":"users","source":" Embedded "}`, "users"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newOpsApp(t)
			res, err := a.SeedFromRequest(context.Background(), tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.target, res.Target)
			assert.Positive(t, res.Loaded)
		})
	}
}

func TestSeedFromRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code cnserrors.ErrorCode
	}{
		{"bad json", `{`, cnserrors.ErrCodeParse},
		{"bad target", `{"target":"drinks"}`, cnserrors.ErrCodeInvalidRequest},
		{"file path", `{"target":"users","source":"/etc/passwd"}`, cnserrors.ErrCodeInvalidRequest},
		{"relative path", `{"target":"users","source":"users.json"}`, cnserrors.ErrCodeInvalidRequest},
		{"http url", `{"target":"users","source":"http://169.254.169.254/latest"}`, cnserrors.ErrCodeInvalidRequest},
		{"file url", `{"target":"foods","source":"file:///etc/shadow"}`, cnserrors.ErrCodeInvalidRequest},
		{"configmap", `{"target":"foods","source":"cm://default/foods/data.json"}`, cnserrors.ErrCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, m := newOpsApp(t)
			_, err := a.SeedFromRequest(context.Background(), tt.body)
			require.Error(t, err)
			assert.True(t, cnserrors.IsCode(err, tt.code), err)

			for _, c := range []store.Collection{store.Foods, store.Users} {
				recs, err := m.Scan(context.Background(), c)
				require.NoError(t, err)
				assert.Empty(t, recs, c.String())
			}
		})
	}
}

func TestRandomPicks(t *testing.T) {
	ctx := context.Background()
	a, _ := newOpsApp(t)
	_, err := a.Loader.LoadFoods(ctx)
	require.NoError(t, err)

	picks, err := a.RandomPicks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, picks, a.Config.Suggest.RandomCount)

	picks, err = a.RandomPicks(ctx, " 1 ")
	require.NoError(t, err)
	assert.Len(t, picks, 1)

	_, err = a.RandomPicks(ctx, "abc")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))

	_, err = a.RandomPicks(ctx, "0")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
}
