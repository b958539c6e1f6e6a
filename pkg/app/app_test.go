package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsiewert/flavor-buddy/pkg/config"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
	"github.com/rsiewert/flavor-buddy/pkg/router"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

func TestNewDefaults(t *testing.T) {
	a, err := New(context.Background(), nil, "v1.2.3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Engine)
	assert.NotNil(t, a.Loader)
	assert.NotNil(t, a.Router)
	assert.Equal(t, "v1.2.3", a.Version)
}

func TestNewSeedsAndRanks(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, config.Default(), "test")
	require.NoError(t, err)

	res, err := a.Loader.LoadFoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", res.Metadata["version"])
	_, err = a.Loader.LoadUsers(ctx)
	require.NoError(t, err)

	resp := a.Router.Dispatch(ctx, router.Request{Method: "GET"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
}

func TestNewInjectedStoreAndSentinelsOff(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	cfg := config.Default()
	cfg.Seed.BootstrapSentinels = false

	a, err := New(ctx, cfg, "", WithStore(m))
	require.NoError(t, err)

	resp := a.Router.Dispatch(ctx, router.Request{Method: "POST", Body: `{"id":"add_food_data"}`})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = m.Get(ctx, store.Foods, "add_food_data")
	assert.NoError(t, err)
}

func TestNewCustomCrosswalk(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "crosswalk.yaml")
	require.NoError(t, os.WriteFile(p, []byte("zesty: isZesty\n"), 0o600))

	cfg := config.Default()
	cfg.Suggest.Crosswalk = p

	m := store.NewMemory()
	a, err := New(ctx, cfg, "", WithStore(m))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Engine.Crosswalk().Len())

	require.NoError(t, m.Put(ctx, store.Users, record.Record{"id": "User123", "zesty": 2, "sweet": 9}))
	require.NoError(t, m.Put(ctx, store.Foods, record.Record{"id": "lemon", "isZesty": true}))
	require.NoError(t, m.Put(ctx, store.Foods, record.Record{"id": "cake", "isSweet": true}))

	ranking, err := a.Engine.Rank(ctx, "User123")
	require.NoError(t, err)
	assert.Equal(t, 1, ranking["lemon"])
	assert.Equal(t, 2, ranking["cake"])
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Suggest.TieBreak = "coin-flip"
	_, err := New(ctx, cfg, "")
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Suggest.Crosswalk = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(ctx, cfg, "", WithStore(store.NewMemory()))
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var a *App
	assert.NoError(t, a.Close())
}

func TestPreload(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, config.Default(), "test")
	require.NoError(t, err)

	results, err := a.Preload(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "foods", results[0].Target)
	assert.Equal(t, "users", results[1].Target)

	ranking, err := a.Engine.Rank(ctx, "User123")
	require.NoError(t, err)
	assert.NotEmpty(t, ranking)
}

func TestPreloadMissingSource(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.UsersSource = filepath.Join(t.TempDir(), "users.json")
	a, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)

	_, err = a.Preload(context.Background())
	assert.Error(t, err)
}

type brokenStore struct{ store.Store }

func (brokenStore) Get(context.Context, store.Collection, string) (record.Record, error) {
	return nil, cnserrors.New(cnserrors.ErrCodeStorage, "table unreachable")
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, nil, "test")
	require.NoError(t, err)
	assert.NoError(t, a.Ping(ctx))

	b, err := New(ctx, nil, "test", WithStore(brokenStore{store.NewMemory()}))
	require.NoError(t, err)
	assert.True(t, cnserrors.IsCode(b.Ping(ctx), cnserrors.ErrCodeStorage))
}
