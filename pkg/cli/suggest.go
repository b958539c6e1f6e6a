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

	"github.com/urfave/cli/v3"
)

func suggestCmd() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Rank candidate foods for a user.",
		Description: `Scores every stored food against the user's taste profile and writes the
ranked list, best match first.

Examples:

Rank foods for the default user from the embedded data:
  flavorbuddy suggest --seed --format table

Rank for a specific user and store the result in a ConfigMap:
  flavorbuddy --store redis suggest --user User42 --output cm://flavor/ranking`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User id to rank for (default: configured default user)",
				Sources: cli.EnvVars("FLAVOR_USER"),
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Only write the N best matches (0 writes all)",
			},
			preloadFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			top := cmd.Int("top")
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := openApp(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer closeApp(a)

			user := cmd.String("user")
			if user == "" {
				user = cfg.Suggest.DefaultUser
			}

			ranked, err := a.Engine.Ranked(ctx, user)
			if err != nil {
				return fmt.Errorf("failed to rank foods for %s: %w", user, err)
			}
			if top > 0 && top < len(ranked) {
				ranked = ranked[:top]
			}

			return writeOutput(ctx, cmd, newSuggestionReport(user, ranked))
		},
	}
}
