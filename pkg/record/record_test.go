package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"id field", Record{"id": "Pizza"}, "Pizza"},
		{"legacy field", Record{"identifier": "Tacos"}, "Tacos"},
		{"id wins over legacy", Record{"id": "A", "identifier": "B"}, "A"},
		{"trimmed", Record{"id": "  Ramen "}, "Ramen"},
		{"non-string id", Record{"id": 7}, ""},
		{"missing", Record{"isSweet": true}, ""},
		{"nil record", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.ID())
		})
	}
}

func TestNormalize(t *testing.T) {
	in := Record{"identifier": "Sushi", "isSalty": true}
	out, err := in.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "Sushi", out[KeyField])
	assert.NotContains(t, out, LegacyKeyField)
	assert.Equal(t, true, out["isSalty"])
	// the input is left untouched
	assert.Contains(t, in, LegacyKeyField)

	_, err = Record{"isSweet": true}.Normalize()
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeParse))
}

func TestParse(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		r, err := Parse(`{"id":"User123","sweet":2,"salty":0}`)
		require.NoError(t, err)
		assert.Equal(t, "User123", r.ID())
		assert.Equal(t, json.Number("2"), r["sweet"])
	})

	badPayloads := map[string]string{
		"empty":      "",
		"whitespace": "   ",
		"not json":   "{id: nope",
		"array":      `[{"id":"a"}]`,
		"null":       "null",
		"missing id": `{"sweet":1}`,
		"numeric id": `{"id":5}`,
		"blank id":   `{"id":"  "}`,
	}
	for name, payload := range badPayloads {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(payload)
			require.Error(t, err)
			assert.Equal(t, cnserrors.ErrCodeParse, cnserrors.CodeOf(err))
		})
	}
}

func TestIsKeyField(t *testing.T) {
	assert.True(t, IsKeyField("id"))
	assert.True(t, IsKeyField("identifier"))
	assert.False(t, IsKeyField("sweet"))
}

func TestPlain(t *testing.T) {
	r := Record{"id": "User123", "sweet": json.Number("2"), "ratio": json.Number("0.5"), "flag": true}
	p := r.Plain()

	assert.Equal(t, int64(2), p["sweet"])
	assert.Equal(t, 0.5, p["ratio"])
	assert.Equal(t, true, p["flag"])
	assert.Equal(t, json.Number("2"), r["sweet"], "input must not be modified")
	assert.Nil(t, Record(nil).Plain())
}
