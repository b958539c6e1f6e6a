package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rankRows []struct {
	ID   string
	Rank int
}

func (r rankRows) TableHeader() []string { return []string{"id", "rank"} }

func (r rankRows) TableRows() [][]string {
	out := make([][]string, 0, len(r))
	for _, row := range r {
		out = append(out, []string{row.ID, strings.Repeat("*", row.Rank)})
	}
	return out
}

func TestWriterFormats(t *testing.T) {
	data := map[string]int{"apple": 1}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"apple\": 1\n}\n"},
		{FormatYAML, "apple: 1\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(tt.format, &buf).Serialize(context.Background(), data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriterTableFlattens(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		Name  string
		Items map[string]int
	}{Name: "ranking", Items: map[string]int{"apple": 1}}

	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), data))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "Items.apple")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "ranking")
}

func TestWriterTableUsesTabular(t *testing.T) {
	var buf bytes.Buffer
	rows := rankRows{{ID: "apple", Rank: 1}, {ID: "pretzel", Rank: 2}}

	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "RANK")
	assert.True(t, strings.HasPrefix(lines[2], "apple"))
	assert.True(t, strings.HasPrefix(lines[3], "pretzel"))
}

func TestWriterTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]int{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestWriterUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(Format("xml"), &buf).Serialize(context.Background(), []int{1}))
	assert.JSONEq(t, "[1]", buf.String())
}

func TestWriterEncodeError(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(context.Background(), map[string]any{"c": make(chan int)})
	assert.Error(t, err)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	_, ok := NewFileWriterOrStdout(FormatJSON, "").(*Writer)
	assert.True(t, ok)

	_, ok = NewFileWriterOrStdout(FormatJSON, "cm://ns/name").(*ConfigMapWriter)
	assert.True(t, ok)

	path := filepath.Join(t.TempDir(), "ranking.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, w.Serialize(context.Background(), map[string]int{"apple": 1}))
	require.NoError(t, w.(Closer).Close())
	require.NoError(t, w.(Closer).Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apple: 1\n", string(content))

	// unwritable path falls back to stdout
	_, ok = NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "x.json")).(*Writer)
	assert.True(t, ok)
}

func TestFormatIsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("").IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
}
