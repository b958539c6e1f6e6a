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

// Package suggest ranks candidate foods against a user's taste preferences.
//
// A preference record maps attribute names (sweet, salty, ...) to integer
// weights. A candidate record maps attribute names (isSweet, isSalty, ...) to
// truthy flags. The Crosswalk ties the two vocabularies together.
//
// Scoring:
//
//	score(c) = sum of weight(p) for every preference attribute p with a
//	           nonzero weight whose crosswalked candidate attribute is
//	           truthy on c
//
// Candidates are then sorted by descending score and assigned dense ranks
// starting at 1. Ties keep the order in which the store returned the
// candidates unless TieBreakID is configured.
//
// Usage:
//
//	engine, err := suggest.NewEngine(st)
//	if err != nil {
//	    return err
//	}
//	ranking, err := engine.Rank(ctx, "User123")
//
// Errors:
//
//   - NOT_FOUND "user not found" when the preference record is missing
//   - NOT_FOUND "no candidates found" when the candidate collection is empty
//   - STORAGE_FAILURE when the store fails
package suggest
