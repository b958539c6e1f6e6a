package serializer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/rsiewert/flavor-buddy/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid", uri: "cm://flavor/foods", wantNamespace: "flavor", wantName: "foods"},
		{name: "spaces trimmed", uri: "cm://flavor / foods ", wantNamespace: "flavor", wantName: "foods"},
		{name: "missing scheme", uri: "flavor/foods", wantErr: true},
		{name: "wrong scheme", uri: "http://flavor/foods", wantErr: true},
		{name: "missing name", uri: "cm://flavor/", wantErr: true},
		{name: "missing namespace", uri: "cm:///foods", wantErr: true},
		{name: "missing separator", uri: "cm://flavor", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, ns)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestNewConfigMapWriterDefaultsFormat(t *testing.T) {
	w := NewConfigMapWriter("flavor", "ranking", Format("unknown"))
	assert.Equal(t, FormatJSON, w.format)
	assert.Equal(t, "flavor", w.namespace)
	assert.Equal(t, "ranking", w.name)
	assert.NoError(t, w.Close())
}

type headered struct {
	header.Header `json:",inline" yaml:",inline"`
	Items         map[string]int `json:"items" yaml:"items"`
}

func TestConfigMapWriterRoundTrip(t *testing.T) {
	ctx := context.Background()
	kc := fake.NewClientset()

	doc := headered{Items: map[string]int{"apple": 1}}
	doc.Init(header.KindRanking, header.APIVersion, "v1.2.3")

	w := NewConfigMapWriter("flavor", "ranking", FormatYAML, WithConfigMapClient(kc))
	require.NoError(t, w.Serialize(ctx, &doc))

	cm, err := kc.CoreV1().ConfigMaps("flavor").Get(ctx, "ranking", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["data.yaml"], "apple: 1")
	assert.Equal(t, "ranking", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v1.2.3", cm.Labels["app.kubernetes.io/version"])

	got, err := FromSource[headered](ctx, "cm://flavor/ranking", WithKubeClient(kc))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items["apple"])
	assert.Equal(t, header.KindRanking, got.Kind)
}
