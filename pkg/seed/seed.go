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

package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/header"
	"github.com/rsiewert/flavor-buddy/pkg/record"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

// SourceEmbedded names the data set compiled into the binary.
const SourceEmbedded = "embedded"

// Reserved record ids that trigger a seed load from a create request.
const (
	SentinelFoods = "add_food_data"
	SentinelUsers = "add_user_data"
)

//go:embed data/foods.json data/users.json
var embedded embed.FS

// SentinelTarget reports the collection a reserved id seeds.
func SentinelTarget(id string) (store.Collection, bool) {
	switch id {
	case SentinelFoods:
		return store.Foods, true
	case SentinelUsers:
		return store.Users, true
	default:
		return "", false
	}
}

// Result summarizes one load.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Target   string `json:"target" yaml:"target"`
	Source   string `json:"source" yaml:"source"`
	Loaded   int    `json:"loaded" yaml:"loaded"`
	Duration string `json:"duration" yaml:"duration"`
}

// TableHeader implements serializer.Tabular.
func (r *Result) TableHeader() []string {
	return []string{"target", "source", "loaded", "duration"}
}

// TableRows implements serializer.Tabular.
func (r *Result) TableRows() [][]string {
	return [][]string{{r.Target, r.Source, fmt.Sprintf("%d", r.Loaded), r.Duration}}
}

// Loader reads sources and writes their records.
type Loader struct {
	store    store.Store
	sources  map[store.Collection]string
	readOpts []serializer.SourceOption
	version  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithDefaultSource sets the source used for target when Load is given none.
func WithDefaultSource(target store.Collection, source string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(source) != "" {
			l.sources[target] = source
		}
	}
}

// WithSourceOptions passes options (kube client, HTTP reader) to the
// serializer when reading sources.
func WithSourceOptions(opts ...serializer.SourceOption) Option {
	return func(l *Loader) {
		l.readOpts = append(l.readOpts, opts...)
	}
}

// WithVersion records the producing version in result headers.
func WithVersion(v string) Option {
	return func(l *Loader) {
		l.version = v
	}
}

// NewLoader returns a loader writing to s. Both targets default to the
// embedded data set.
func NewLoader(s store.Store, opts ...Option) (*Loader, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	l := &Loader{
		store: s,
		sources: map[store.Collection]string{
			store.Foods: SourceEmbedded,
			store.Users: SourceEmbedded,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadFoods loads the default candidate source.
func (l *Loader) LoadFoods(ctx context.Context) (*Result, error) {
	return l.Load(ctx, store.Foods, "")
}

// LoadUsers loads the default preference source.
func (l *Loader) LoadUsers(ctx context.Context) (*Result, error) {
	return l.Load(ctx, store.Users, "")
}

// Load reads source (or the target's default when empty), validates every
// record, then writes them into target.
func (l *Loader) Load(ctx context.Context, target store.Collection, source string) (*Result, error) {
	if !target.IsValid() {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown seed target %q", target), map[string]any{
				"supported": store.SupportedCollections(),
			})
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = l.sources[target]
	}

	start := time.Now()

	recs, err := l.Parse(ctx, target, source)
	if err != nil {
		return nil, err
	}

	for i, r := range recs {
		if err := l.store.Put(ctx, target, r); err != nil {
			slog.Error("seed write failed",
				"target", target.String(),
				"source", source,
				"written", i,
				"error", err)
			return nil, cnserrors.WrapWithContext(cnserrors.CodeOf(err),
				"seed load interrupted", err, map[string]any{
					"target":  target.String(),
					"written": i,
					"total":   len(recs),
				})
		}
	}

	res := &Result{
		Target:   target.String(),
		Source:   source,
		Loaded:   len(recs),
		Duration: time.Since(start).Round(time.Millisecond).String(),
	}
	res.Init(header.KindSeedResult, header.APIVersion, l.version)

	slog.Info("seed load complete",
		"target", res.Target,
		"source", res.Source,
		"loaded", res.Loaded,
		"duration", res.Duration)

	return res, nil
}

// Parse reads and validates source without writing anything.
func (l *Loader) Parse(ctx context.Context, target store.Collection, source string) ([]record.Record, error) {
	raw, err := l.read(ctx, target, source)
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(raw))
	for i, r := range raw {
		if r == nil {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeParse,
				"seed entry is not an object", map[string]any{"source": source, "index": i})
		}
		n, err := r.Normalize()
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeParse,
				"seed entry is invalid", err, map[string]any{"source": source, "index": i})
		}
		out = append(out, n)
	}
	return out, nil
}

func (l *Loader) read(ctx context.Context, target store.Collection, source string) ([]record.Record, error) {
	var (
		recs *[]record.Record
		err  error
	)

	if source == SourceEmbedded {
		content, readErr := embedded.ReadFile("data/" + target.String() + ".json")
		if readErr != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeNotFound, "embedded seed data not found", readErr)
		}
		recs, err = serializer.FromBytes[[]record.Record](serializer.FormatJSON, content)
	} else {
		recs, err = serializer.FromSource[[]record.Record](ctx, source, l.readOpts...)
	}

	ctxInfo := map[string]any{"source": source, "target": target.String()}
	switch {
	case err == nil:
		return *recs, nil
	case errors.Is(err, serializer.ErrNotFound):
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "seed source not found", err, ctxInfo)
	case errors.Is(err, serializer.ErrDecode):
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeParse, "seed source is malformed", err, ctxInfo)
	default:
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInternal, "failed to read seed source", err, ctxInfo)
	}
}
