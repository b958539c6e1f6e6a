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

package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
)

const (
	// KeyField is the attribute holding a record's identifier.
	KeyField = "id"
	// LegacyKeyField is accepted on input as an alias of KeyField.
	LegacyKeyField = "identifier"
)

// Record is a single stored item.
type Record map[string]any

// ID returns the record identifier, or "" when absent or not a string.
func (r Record) ID() string {
	for _, k := range []string{KeyField, LegacyKeyField} {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Normalize returns a copy with the identifier stored under KeyField.
// It fails with a parse error when no non-empty identifier is present.
func (r Record) Normalize() (Record, error) {
	id := r.ID()
	if id == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeParse,
			"record is missing an identifier", map[string]any{
				"fields": []string{KeyField, LegacyKeyField},
			})
	}
	out := r.Clone()
	delete(out, LegacyKeyField)
	out[KeyField] = id
	return out, nil
}

// IsKeyField reports whether name is an identifier attribute that never
// participates in scoring.
func IsKeyField(name string) bool {
	return name == KeyField || name == LegacyKeyField
}

// Parse decodes a JSON object into a normalized Record. Numbers are kept
// as json.Number so integer weights survive without float rounding.
func Parse(payload string) (Record, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeParse, "request body is empty")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeParse, "request body is not a JSON object", err)
	}
	if r == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeParse, "request body is not a JSON object")
	}
	return r.Normalize()
}

// String implements fmt.Stringer for log output.
func (r Record) String() string {
	return fmt.Sprintf("record(%s, %d attributes)", r.ID(), len(r))
}

// Plain returns a copy with json.Number values converted to int64 or
// float64, the shape store backends marshal natively.
func (r Record) Plain() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		n, ok := v.(json.Number)
		if !ok {
			out[k] = v
			continue
		}
		if i, err := n.Int64(); err == nil {
			out[k] = i
		} else if f, err := n.Float64(); err == nil {
			out[k] = f
		} else {
			out[k] = n.String()
		}
	}
	return out
}
