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

package cli

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rsiewert/flavor-buddy/pkg/header"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
	"github.com/rsiewert/flavor-buddy/pkg/suggest"
)

var displayCase = cases.Title(language.English)

// suggestionReport is the document written by the suggest command.
type suggestionReport struct {
	header.Header `json:",inline" yaml:",inline"`

	User  string           `json:"user" yaml:"user"`
	Items []suggest.Scored `json:"items" yaml:"items"`
}

func newSuggestionReport(user string, items []suggest.Scored) *suggestionReport {
	r := &suggestionReport{User: user, Items: items}
	r.Init(header.KindRanking, header.APIVersion, version)
	return r
}

// TableHeader implements serializer.Tabular.
func (r *suggestionReport) TableHeader() []string {
	return []string{"rank", "food", "score"}
}

// TableRows implements serializer.Tabular.
func (r *suggestionReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, s := range r.Items {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			displayCase.String(s.ID),
			strconv.Itoa(s.Score),
		})
	}
	return rows
}

// randomReport is the document written by the random command.
type randomReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Items map[string]string `json:"items" yaml:"items"`
}

func newRandomReport(items map[string]string) *randomReport {
	r := &randomReport{Items: items}
	r.Init(header.KindRandomPick, header.APIVersion, version)
	return r
}

// TableHeader implements serializer.Tabular.
func (r *randomReport) TableHeader() []string {
	return []string{"slot", "food"}
}

// TableRows implements serializer.Tabular. Rows are ordered by slot.
func (r *randomReport) TableRows() [][]string {
	keys := slices.SortedFunc(maps.Keys(r.Items), compareSlots)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, displayCase.String(r.Items[k])})
	}
	return rows
}

// compareSlots orders random_item2 before random_item10.
func compareSlots(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// seedResults renders several loads as one table.
type seedResults []*seed.Result

// TableHeader implements serializer.Tabular.
func (rs seedResults) TableHeader() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].TableHeader()
}

// TableRows implements serializer.Tabular.
func (rs seedResults) TableRows() [][]string {
	var rows [][]string
	for _, r := range rs {
		rows = append(rows, r.TableRows()...)
	}
	return rows
}
