package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/rsiewert/flavor-buddy/pkg/serializer"
	"github.com/rsiewert/flavor-buddy/pkg/store"
	"github.com/rsiewert/flavor-buddy/pkg/suggest"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FLAVOR_CONFIG", "FLAVOR_STORE", "FLAVOR_FOODS_SOURCE", "FLAVOR_USERS_SOURCE",
		"FLAVOR_DEFAULT_USER", "FLAVOR_USER", "FLAVOR_CROSSWALK", "FLAVOR_TIE_BREAK",
		"FLAVOR_SEED_ON_START", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

// run executes the root command and returns the contents written to --output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	out := filepath.Join(t.TempDir(), "out")
	argv := append([]string{name}, args...)
	argv = append(argv, "--output", out)

	err := newRootCmd().Run(context.Background(), argv)
	b, rerr := os.ReadFile(out)
	if rerr != nil {
		return "", err
	}
	return string(b), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{name: "yaml", format: "yaml", want: serializer.FormatYAML},
		{name: "json", format: "json", want: serializer.FormatJSON},
		{name: "table", format: "table", want: serializer.FormatTable},
		{name: "xml", format: "xml", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var gotErr error
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{formatFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					got, gotErr = parseOutputFormat(c)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test", "--format", tt.format}))

			if tt.wantErr {
				assert.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargets(t *testing.T) {
	got, err := parseTargets("all")
	require.NoError(t, err)
	assert.Equal(t, []store.Collection{store.Foods, store.Users}, got)

	got, err = parseTargets("Users")
	require.NoError(t, err)
	assert.Equal(t, []store.Collection{store.Users}, got)

	_, err = parseTargets("recipes")
	assert.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, "suggest", "--seed", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Kind  string           `json:"kind"`
		User  string           `json:"user"`
		Items []suggest.Scored `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Ranking", doc.Kind)
	assert.Equal(t, "User123", doc.User)
	require.NotEmpty(t, doc.Items)
	for i, s := range doc.Items {
		assert.Equal(t, i+1, s.Rank)
		if i > 0 {
			assert.LessOrEqual(t, s.Score, doc.Items[i-1].Score)
		}
	}
}

func TestSuggestTop(t *testing.T) {
	out, err := run(t, "suggest", "--seed", "--top", "2", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Items []suggest.Scored `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Items, 2)
}

func TestSuggestTable(t *testing.T) {
	out, err := run(t, "suggest", "--seed", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Apple Pie")
}

func TestSuggestErrors(t *testing.T) {
	_, err := run(t, "suggest", "--seed", "--user", "Nobody")
	assert.ErrorContains(t, err, "user not found")

	_, err = run(t, "suggest")
	assert.Error(t, err, "memory store starts empty")

	_, err = run(t, "suggest", "--seed", "--top=-1")
	assert.Error(t, err)

	_, err = run(t, "suggest", "--seed", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "--store", "floppy", "suggest", "--seed")
	assert.Error(t, err)
}

func TestRandomCommand(t *testing.T) {
	out, err := run(t, "random", "--seed", "--count", "2", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Kind  string            `json:"kind"`
		Items map[string]string `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "RandomPick", doc.Kind)
	assert.Len(t, doc.Items, 2)
	assert.Contains(t, doc.Items, "random_item1")
	assert.Contains(t, doc.Items, "random_item2")
	assert.NotEqual(t, doc.Items["random_item1"], doc.Items["random_item2"])

	_, err = run(t, "random", "--seed", "--count", "0")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	out, err := run(t, "seed", "--target", "all", "--format", "json")
	require.NoError(t, err)

	var results []struct {
		Kind   string `json:"kind"`
		Target string `json:"target"`
		Loaded int    `json:"loaded"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "SeedResult", results[0].Kind)
	assert.Equal(t, "foods", results[0].Target)
	assert.Equal(t, "users", results[1].Target)
	assert.Positive(t, results[0].Loaded)
}

func TestSeedCommandSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "foods.yaml")
	require.NoError(t, os.WriteFile(src, []byte("- id: tofu\n  isSavory: true\n- id: mochi\n  isSweet: true\n"), 0o600))

	out, err := run(t, "seed", "--target", "foods", "--source", src, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "foods")
	assert.Contains(t, out, "2")

	_, err = run(t, "seed", "--target", "all", "--source", src)
	assert.ErrorContains(t, err, "single target")

	_, err = run(t, "seed", "--target", "recipes")
	assert.Error(t, err)

	_, err = run(t, "seed", "--target", "foods", "--source", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRandomReportRows(t *testing.T) {
	r := newRandomReport(map[string]string{
		"random_item10": "kimchi",
		"random_item2":  "apple pie",
		"random_item1":  "pretzel",
	})
	assert.Equal(t, [][]string{
		{"random_item1", "Pretzel"},
		{"random_item2", "Apple Pie"},
		{"random_item10", "Kimchi"},
	}, r.TableRows())
	assert.Equal(t, "RandomPick", r.Kind.String())
}

func TestSeedResultsTableEmpty(t *testing.T) {
	var rs seedResults
	assert.Nil(t, rs.TableHeader())
	assert.Empty(t, rs.TableRows())
}
