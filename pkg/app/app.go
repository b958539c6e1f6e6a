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

// Package app assembles the record store, suggestion engine, seed loader
// and request router from a config.Config. The Lambda binary, the HTTP
// server and the CLI all build their components through New.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rsiewert/flavor-buddy/pkg/config"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/router"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
	"github.com/rsiewert/flavor-buddy/pkg/store"
	"github.com/rsiewert/flavor-buddy/pkg/suggest"
)

const pingID = "__readiness__"

// App holds the wired components.
type App struct {
	Config  *config.Config
	Version string
	Store   store.Store
	Engine  *suggest.Engine
	Loader  *seed.Loader
	Router  *router.Router
}

// Option configures New.
type Option func(*options)

type options struct {
	store      store.Store
	sourceOpts []serializer.SourceOption
}

// WithStore uses s instead of opening the configured backend.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithSourceOptions is passed through to the seed loader.
func WithSourceOptions(opts ...serializer.SourceOption) Option {
	return func(o *options) {
		o.sourceOpts = append(o.sourceOpts, opts...)
	}
}

// New opens the store and wires every component. Call Close when done.
func New(ctx context.Context, cfg *config.Config, version string, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	st := o.store
	if st == nil {
		var err error
		if st, err = store.Open(ctx, cfg.StoreOptions()); err != nil {
			return nil, fmt.Errorf("failed to open record store: %w", err)
		}
	}

	a, err := wire(cfg, version, st, o)
	if err != nil {
		if o.store == nil {
			_ = store.Close(st)
		}
		return nil, err
	}
	return a, nil
}

func wire(cfg *config.Config, version string, st store.Store, o *options) (*App, error) {
	cw := suggest.DefaultCrosswalk()
	if cfg.Suggest.Crosswalk != "" {
		var err error
		if cw, err = suggest.LoadCrosswalk(cfg.Suggest.Crosswalk); err != nil {
			return nil, fmt.Errorf("failed to load crosswalk: %w", err)
		}
		slog.Info("custom crosswalk loaded", "path", cfg.Suggest.Crosswalk, "pairs", cw.Len())
	}

	tb, err := suggest.ParseTieBreak(cfg.Suggest.TieBreak)
	if err != nil {
		return nil, err
	}

	engine, err := suggest.NewEngine(st, suggest.WithCrosswalk(cw), suggest.WithTieBreak(tb))
	if err != nil {
		return nil, err
	}

	loader, err := seed.NewLoader(st,
		seed.WithDefaultSource(store.Foods, cfg.Seed.FoodsSource),
		seed.WithDefaultSource(store.Users, cfg.Seed.UsersSource),
		seed.WithSourceOptions(o.sourceOpts...),
		seed.WithVersion(version),
	)
	if err != nil {
		return nil, err
	}

	rt, err := router.New(st, engine,
		router.WithSeeder(loader),
		router.WithDefaultUser(cfg.Suggest.DefaultUser),
		router.WithSentinels(cfg.Seed.BootstrapSentinels),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Version: version,
		Store:   st,
		Engine:  engine,
		Loader:  loader,
		Router:  rt,
	}, nil
}

// Preload seeds both collections from their default sources.
func (a *App) Preload(ctx context.Context) ([]*seed.Result, error) {
	results := make([]*seed.Result, 2)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := a.Loader.LoadFoods(gctx)
		results[0] = r
		return err
	})
	g.Go(func() error {
		r, err := a.Loader.LoadUsers(gctx)
		results[1] = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, r := range results {
		slog.Info("seed data loaded", "target", r.Target, "source", r.Source, "loaded", r.Loaded)
	}
	return results, nil
}

// Ping reports whether the record store answers reads. A missing probe
// record counts as a healthy answer.
func (a *App) Ping(ctx context.Context) error {
	_, err := a.Store.Get(ctx, store.Users, pingID)
	if err == nil || cnserrors.IsCode(err, cnserrors.ErrCodeNotFound) {
		return nil
	}
	return err
}

// Close releases the store's network client, if any.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return store.Close(a.Store)
}
