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
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Candidate is the scoring view of a food record.
type Candidate struct {
	ID     string
	record Record
}

// NewCandidate wraps a record as a candidate.
func NewCandidate(r Record) Candidate {
	return Candidate{ID: r.ID(), record: r}
}

// Has reports whether the candidate exhibits attr.
func (c Candidate) Has(attr string) bool {
	v, ok := c.record[attr]
	if !ok {
		return false
	}
	return Truthy(v)
}

// Preference is the scoring view of a user record.
type Preference struct {
	UserID  string
	Weights map[string]int
}

// NewPreference extracts the integer weights from a user record.
// Identifier fields are dropped; values that are not numeric count as 0.
func NewPreference(r Record) Preference {
	p := Preference{
		UserID:  r.ID(),
		Weights: make(map[string]int, len(r)),
	}
	for k, v := range r {
		if IsKeyField(k) {
			continue
		}
		p.Weights[k] = Weight(v)
	}
	return p
}

// Truthy reports the truth value of a stored attribute. Booleans are taken
// as is, numbers are true when nonzero, strings are parsed as booleans and
// otherwise true when non-empty. Everything else is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.TrimSpace(t)
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}

// Weight coerces a stored preference value into an integer weight.
func Weight(v any) int {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return truncate(float64(t))
	case float64:
		return truncate(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return truncate(f)
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncate(f)
		}
		return 0
	default:
		return 0
	}
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
