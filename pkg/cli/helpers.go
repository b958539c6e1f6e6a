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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rsiewert/flavor-buddy/pkg/app"
	"github.com/rsiewert/flavor-buddy/pkg/config"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

// Flag constructors return a fresh flag for each command tree.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML or JSON config file",
		Sources: cli.EnvVars("FLAVOR_CONFIG"),
	}
}

func logLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}

func storeFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "store",
		Usage: fmt.Sprintf("Record store backend (%s)", strings.Join(store.SupportedBackends(), ", ")),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path, cm://namespace/name, or stdout when empty",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func preloadFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "seed",
		Usage: "Load the default seed sources before running (useful with the memory store)",
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadConfig reads the config file and environment, then applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("store") {
		cfg.Store.Backend = cmd.String("store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp wires the application and optionally preloads seed data.
func openApp(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*app.App, error) {
	a, err := app.New(ctx, cfg, version)
	if err != nil {
		return nil, err
	}
	if cmd.Bool("seed") {
		if _, err := a.Preload(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to preload seed data: %w", err)
		}
	}
	return a, nil
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		slog.Warn("failed to close record store", "error", err)
	}
}

// writeOutput serializes v to the --output destination in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	defer func() {
		if c, ok := ser.(serializer.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				slog.Warn("failed to close output", "error", cerr)
			}
		}
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
