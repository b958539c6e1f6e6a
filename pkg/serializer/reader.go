// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	"github.com/rsiewert/flavor-buddy/pkg/k8s/client"
)

// FormatFromPath determines the format from a path or URL extension:
// .json → JSON, .yaml/.yml → YAML, .table/.txt → Table. Unknown extensions
// default to JSON. Matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	p := filePath
	if u, err := url.Parse(filePath); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// Reader decodes JSON or YAML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader. Table format cannot be decoded. If input is an
// io.Closer it is closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{format: format, input: input}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// Deserialize decodes the input into v. JSON numbers decode as json.Number
// when the target is untyped. Decode failures wrap ErrDecode.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(r.input)
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: invalid JSON: %w", ErrDecode, err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("%w: invalid YAML: %w", ErrDecode, err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the input if it is closeable. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// SourceOption configures FromSource.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	kubeconfig string
	kubeClient client.Interface
	http       *HttpReader
}

// WithKubeconfig selects the kubeconfig used for ConfigMap sources.
func WithKubeconfig(path string) SourceOption {
	return func(o *sourceOptions) {
		o.kubeconfig = path
	}
}

// WithKubeClient uses an existing Kubernetes client for ConfigMap sources.
func WithKubeClient(c client.Interface) SourceOption {
	return func(o *sourceOptions) {
		o.kubeClient = c
	}
}

// WithHTTPReader uses r for HTTP(S) sources.
func WithHTTPReader(r *HttpReader) SourceOption {
	return func(o *sourceOptions) {
		o.http = r
	}
}

// FromFile loads a value of type T from a path, URL or ConfigMap URI.
//
//	cfg, err := FromFile[Config]("flavorbuddy.yaml")
func FromFile[T any](path string) (*T, error) {
	return FromSource[T](context.Background(), path)
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig for
// ConfigMap URIs.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	return FromSource[T](context.Background(), path, WithKubeconfig(kubeconfig))
}

// FromSource loads a value of type T from a local path, an HTTP(S) URL or a
// ConfigMap URI. Missing sources wrap ErrNotFound; undecodable content wraps
// ErrDecode.
func FromSource[T any](ctx context.Context, src string, opts ...SourceOption) (*T, error) {
	o := &sourceOptions{}
	for _, opt := range opts {
		opt(o)
	}

	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("source is empty")
	}

	format, content, err := readSource(ctx, src, o)
	if err != nil {
		return nil, err
	}

	slog.Debug("read source", "source", src, "format", format, "size", len(content))

	reader, err := NewReader(format, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", src, err)
	}

	var v T
	if err := reader.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", src, err)
	}
	return &v, nil
}

// FromBytes decodes content in format into a value of type T.
func FromBytes[T any](format Format, content []byte) (*T, error) {
	reader, err := NewReader(format, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	var v T
	if err := reader.Deserialize(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func readSource(ctx context.Context, src string, o *sourceOptions) (Format, []byte, error) {
	switch {
	case strings.HasPrefix(src, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(src)
		if err != nil {
			return "", nil, fmt.Errorf("invalid ConfigMap URI: %w", err)
		}
		return readConfigMap(ctx, namespace, name, o)

	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		hr := o.http
		if hr == nil {
			hr = NewHttpReader()
		}
		content, err := hr.ReadWithContext(ctx, src)
		if err != nil {
			return "", nil, err
		}
		return FormatFromPath(src), content, nil

	default:
		content, err := os.ReadFile(src)
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		if err != nil {
			return "", nil, fmt.Errorf("failed to read %s: %w", src, err)
		}
		return FormatFromPath(src), content, nil
	}
}

func readConfigMap(ctx context.Context, namespace, name string, o *sourceOptions) (Format, []byte, error) {
	c := o.kubeClient
	if c == nil {
		var err error
		if o.kubeconfig != "" {
			c, _, err = client.GetKubeClientWithConfig(o.kubeconfig)
		} else {
			c, _, err = client.GetKubeClient()
		}
		if err != nil {
			return "", nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	getCtx, cancel := context.WithTimeout(ctx, defaults.K8sConfigMapTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(getCtx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return "", nil, fmt.Errorf("%w: ConfigMap %s/%s", ErrNotFound, namespace, name)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	key, format, ok := configMapDataKey(cm.Data)
	if !ok {
		return "", nil, fmt.Errorf("%w: ConfigMap %s/%s has no json or yaml data", ErrNotFound, namespace, name)
	}
	return format, []byte(cm.Data[key]), nil
}

// configMapDataKey picks the data entry to decode: data.<format> when the
// ConfigMap carries a format key, otherwise the first (sorted) key with a
// JSON or YAML extension.
func configMapDataKey(data map[string]string) (string, Format, bool) {
	if f, ok := data[configMapFormatKey]; ok {
		format := Format(f)
		key := configMapDataPrefix + "." + string(format)
		if _, exists := data[key]; exists && format != FormatTable {
			return key, format, true
		}
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch strings.ToLower(path.Ext(k)) {
		case ".json":
			return k, FormatJSON, true
		case ".yaml", ".yml":
			return k, FormatYAML, true
		}
	}
	return "", "", false
}
