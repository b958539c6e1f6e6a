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

	"github.com/urfave/cli/v3"

	"github.com/rsiewert/flavor-buddy/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Description: `Serves /v1/storage, /v1/foods/random and /v1/admin/seed alongside
/health, /ready and /metrics until interrupted.

Examples:

Serve from memory with the embedded seed data:
  flavorbuddy serve --seed

Serve from DynamoDB on a custom port:
  flavorbuddy --store dynamodb serve --port 9090`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config and PORT)",
			},
			preloadFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("port") {
				cfg.Server.Port = cmd.Int("port")
			}
			if cmd.Bool("seed") {
				cfg.Seed.OnStart = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return api.Serve(ctx, cfg, version)
		},
	}
}
