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

// Package serializer reads and writes structured documents for Flavor Buddy.
//
// # Formats
//
//   - JSON: seed data, API payloads, machine-readable CLI output
//   - YAML: seed data and configuration files
//   - Table: human-readable CLI output (write only)
//
// # Sources
//
// FromFile and FromSource accept:
//
//   - Local paths: ./data/foods.json, /etc/flavorbuddy/config.yaml
//   - HTTP(S) URLs: https://example.com/foods.json
//   - ConfigMap URIs: cm://namespace/name
//
// Format is detected from the path extension. ConfigMap sources use the
// "format" key when present and otherwise the first data key ending in
// .json, .yaml or .yml.
//
// Errors wrap ErrNotFound when the source does not exist and ErrDecode when
// its content cannot be decoded, so callers can tell the two apart:
//
//	foods, err := serializer.FromSource[[]record.Record](ctx, "cm://default/foods")
//	if errors.Is(err, serializer.ErrNotFound) {
//	    ...
//	}
//
// # Destinations
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, output)
//	defer w.Close()
//	if err := w.Serialize(ctx, ranking); err != nil {
//	    return err
//	}
//
// Values implementing Tabular control their own table layout; everything
// else is flattened into FIELD/VALUE rows.
package serializer
