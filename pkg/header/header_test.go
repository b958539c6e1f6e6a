package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindRanking, KindRandomPick, KindSeedResult} {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, Kind("Recipe").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindSeedResult),
		WithAPIVersion(APIVersion),
		WithMetadata("target", "foods"),
	)

	assert.Equal(t, KindSeedResult, h.GetKind())
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "foods", h.GetMetadata()["target"])
}

func TestWithMetadataInitializesMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	h := New(WithMetadata("stale", "x"))
	h.Init(KindRanking, APIVersion, "v1.0.0")

	assert.Equal(t, KindRanking, h.Kind)
	assert.Equal(t, "v1.0.0", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindRandomPick, APIVersion, "")
	assert.NotContains(t, h.Metadata, "version")
}
