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

package app

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

// SourceDefault names the configured seed source of a target.
const SourceDefault = "default"

// SeedRequest is the body of a remote seed request. Source names one of
// AllowedSeedSources; paths, URLs and ConfigMap URIs are CLI-only.
type SeedRequest struct {
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
}

// AllowedSeedSources lists the source names a remote seed request may use.
func AllowedSeedSources() []string {
	return []string{SourceDefault, seed.SourceEmbedded}
}

// SeedFromRequest decodes a SeedRequest body and loads the named source.
func (a *App) SeedFromRequest(ctx context.Context, body string) (*seed.Result, error) {
	var req SeedRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeParse, "seed request is not valid JSON", err)
	}

	target, err := store.ParseCollection(req.Target)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid seed target", err, map[string]any{"supported": store.SupportedCollections()})
	}

	source, err := resolveSeedSource(req.Source)
	if err != nil {
		return nil, err
	}
	return a.Loader.Load(ctx, target, source)
}

// resolveSeedSource maps a remote source name to a loader source. An empty
// result selects the loader's configured default.
func resolveSeedSource(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", SourceDefault:
		return "", nil
	case seed.SourceEmbedded:
		return seed.SourceEmbedded, nil
	default:
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"seed source must name a configured source", map[string]any{
				"source":  name,
				"allowed": AllowedSeedSources(),
			})
	}
}

// RandomPicks returns random candidate ids. count is the raw request value;
// empty selects the configured default.
func (a *App) RandomPicks(ctx context.Context, count string) (map[string]string, error) {
	n := a.Config.Suggest.RandomCount
	if v := strings.TrimSpace(count); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "count must be an integer", err)
		}
		n = parsed
	}
	return a.Engine.Random(ctx, n, nil)
}
