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

func randomCmd() *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Pick random candidate foods.",
		Description: `Returns distinct food ids chosen at random, keyed random_item1..N.

Example:
  flavorbuddy random --seed --count 5 --format json`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of foods to pick (default: configured random count)",
			},
			preloadFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			count := cfg.Suggest.RandomCount
			if cmd.IsSet("count") {
				count = cmd.Int("count")
			}

			a, err := openApp(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer closeApp(a)

			picks, err := a.Engine.Random(ctx, count, nil)
			if err != nil {
				return fmt.Errorf("failed to pick random foods: %w", err)
			}
			return writeOutput(ctx, cmd, newRandomReport(picks))
		},
	}
}
