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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	"github.com/rsiewert/flavor-buddy/pkg/header"
	"github.com/rsiewert/flavor-buddy/pkg/k8s/client"
)

const (
	configMapDataPrefix  = "data"
	configMapFormatKey   = "format"
	configMapTimeKey     = "timestamp"
	configMapFieldManager = "flavorbuddy"
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap using
// server-side apply, creating or updating it.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// ConfigMapWriterOption configures a ConfigMapWriter.
type ConfigMapWriterOption func(*ConfigMapWriter)

// WithConfigMapClient uses c instead of the shared client.
func WithConfigMapClient(c client.Interface) ConfigMapWriterOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter creates a writer for namespace/name. Unknown formats
// fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapWriterOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize stores v under data.{json|yaml|table} together with the format
// and a timestamp. Values carrying a header contribute kind and version
// labels.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.K8sConfigMapTimeout)
	defer cancel()

	c := w.client
	if c == nil {
		var err error
		if c, _, err = client.GetKubeClient(); err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	content, err := encode(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	kind, version, timestamp := "", "unknown", time.Now().UTC().Format(time.RFC3339)
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		kind = h.GetKind().String()
		if mv, exists := h.GetMetadata()["version"]; exists {
			version = mv
		}
		if ts, exists := h.GetMetadata()["timestamp"]; exists {
			timestamp = ts
		}
	}
	if kind == "" {
		kind = "document"
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "flavorbuddy",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			configMapDataPrefix + "." + string(w.format): string(content),
			configMapFormatKey: string(w.format),
			configMapTimeKey:   timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"kind", kind)

	if _, err := c.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	}); err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
