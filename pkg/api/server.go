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

package api

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/rsiewert/flavor-buddy/pkg/app"
	"github.com/rsiewert/flavor-buddy/pkg/config"
	"github.com/rsiewert/flavor-buddy/pkg/server"
)

const name = "flavorbuddy-api"

// NewServer wires the application and returns a server ready to Run. The
// returned App must be closed by the caller.
func NewServer(ctx context.Context, cfg *config.Config, version string, opts ...app.Option) (*server.Server, *app.App, error) {
	a, err := app.New(ctx, cfg, version, opts...)
	if err != nil {
		return nil, nil, err
	}

	h, err := NewHandlers(a)
	if err != nil {
		_ = a.Close()
		return nil, nil, err
	}

	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version
	sc.Port = a.Config.Server.Port
	sc.RateLimit = rate.Limit(a.Config.Server.RateLimit)
	sc.RateLimitBurst = a.Config.Server.RateLimitBurst
	sc.ReadinessProbe = a.Ping

	s := server.New(
		server.WithConfig(sc),
		server.WithHandler(h.Routes()),
	)
	return s, a, nil
}

// Serve runs the API until ctx is done or the process is signalled.
func Serve(ctx context.Context, cfg *config.Config, version string) error {
	s, a, err := NewServer(ctx, cfg, version)
	if err != nil {
		return fmt.Errorf("failed to initialize api: %w", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			slog.Warn("failed to close record store", "error", cerr)
		}
	}()

	slog.Info("starting",
		"name", name,
		"version", version,
		"store", a.Config.Store.Backend,
		"sentinels", a.Config.Seed.BootstrapSentinels,
	)

	if a.Config.Seed.OnStart {
		if _, err := a.Preload(ctx); err != nil {
			return fmt.Errorf("failed to preload seed data: %w", err)
		}
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
