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

package suggest

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
)

// defaultPairs maps preference attributes to candidate attributes.
var defaultPairs = map[string]string{
	"sweet":      "isSweet",
	"salty":      "isSalty",
	"sour":       "isSour",
	"bitter":     "isBitter",
	"spicy":      "isSpicy",
	"savory":     "isSavory",
	"umami":      "isUmami",
	"crunchy":    "isCrunchy",
	"creamy":     "isCreamy",
	"vegetarian": "isVegetarian",
	"glutenFree": "isGlutenFree",
	"dairyFree":  "isDairyFree",
}

// Crosswalk is an immutable one-to-one association between preference
// attribute names and candidate attribute names.
type Crosswalk struct {
	toCandidate  map[string]string
	toPreference map[string]string
}

// NewCrosswalk builds a crosswalk from preference to candidate attribute
// pairs. Names must be non-empty, must not be identifier fields, and no two
// preference attributes may map to the same candidate attribute.
func NewCrosswalk(pairs map[string]string) (*Crosswalk, error) {
	if len(pairs) == 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "crosswalk has no entries")
	}

	cw := &Crosswalk{
		toCandidate:  make(map[string]string, len(pairs)),
		toPreference: make(map[string]string, len(pairs)),
	}

	// sorted for stable error messages
	for _, pref := range slices.Sorted(maps.Keys(pairs)) {
		cand := strings.TrimSpace(pairs[pref])
		pref = strings.TrimSpace(pref)

		if pref == "" || cand == "" {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("crosswalk entry %q -> %q has an empty name", pref, cand))
		}
		if record.IsKeyField(pref) || record.IsKeyField(cand) {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("crosswalk entry %q -> %q uses an identifier field", pref, cand))
		}
		if other, dup := cw.toPreference[cand]; dup {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("candidate attribute %q is mapped more than once", cand), map[string]any{
					"preferences": []string{other, pref},
				})
		}
		if _, dup := cw.toCandidate[pref]; dup {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("preference attribute %q is mapped more than once", pref))
		}

		cw.toCandidate[pref] = cand
		cw.toPreference[cand] = pref
	}

	return cw, nil
}

// DefaultCrosswalk returns the built-in taste vocabulary.
func DefaultCrosswalk() *Crosswalk {
	cw, err := NewCrosswalk(defaultPairs)
	if err != nil {
		panic(fmt.Sprintf("default crosswalk is invalid: %v", err))
	}
	return cw
}

// LoadCrosswalk reads preference to candidate pairs from a JSON or YAML
// mapping at path (file, URL or cm://namespace/name).
func LoadCrosswalk(path string) (*Crosswalk, error) {
	pairs, err := serializer.FromFile[map[string]string](path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"failed to load crosswalk", err, map[string]any{"path": path})
	}
	return NewCrosswalk(*pairs)
}

// CandidateAttr resolves a preference attribute to its candidate attribute.
func (c *Crosswalk) CandidateAttr(pref string) (string, bool) {
	v, ok := c.toCandidate[pref]
	return v, ok
}

// PreferenceAttr resolves a candidate attribute to its preference attribute.
func (c *Crosswalk) PreferenceAttr(cand string) (string, bool) {
	v, ok := c.toPreference[cand]
	return v, ok
}

// Len returns the number of attribute pairs.
func (c *Crosswalk) Len() int {
	return len(c.toCandidate)
}

// Pairs returns a copy of the preference to candidate mapping.
func (c *Crosswalk) Pairs() map[string]string {
	return maps.Clone(c.toCandidate)
}
