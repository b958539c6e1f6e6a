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

// Package seed bulk-loads candidate and preference records into the store.
//
// A source is a JSON or YAML array of records, each with an "id" (or legacy
// "identifier") field. Sources may be:
//
//   - "" or "embedded": the data set compiled into the binary
//   - a local path: ./data/foods.yaml
//   - an HTTP(S) URL: https://example.com/foods.json
//   - a ConfigMap URI: cm://flavor/foods
//
// The whole source is read and validated before the first write, so a
// malformed source leaves the store untouched. Records are then put one by
// one, overwriting existing records with the same id.
//
//	loader, err := seed.NewLoader(st)
//	if err != nil {
//	    return err
//	}
//	res, err := loader.Load(ctx, store.Foods, "cm://flavor/foods")
//
// Errors:
//
//   - NOT_FOUND: the source does not exist
//   - PARSE_ERROR: the source is not an array of records with ids
//   - STORAGE_FAILURE: a write failed; earlier writes are kept
//
// The reserved record ids add_food_data and add_user_data let a create
// request trigger a load of the default source (see SentinelTarget).
package seed
