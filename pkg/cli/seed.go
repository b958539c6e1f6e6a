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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rsiewert/flavor-buddy/pkg/store"
)

const targetAll = "all"

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load foods or users into the record store.",
		Description: `Reads an array of records from a seed source and writes each one by id.
Sources may be a file path, an http(s) URL, a cm://namespace/name
ConfigMap, or "embedded" for the bundled data. Without --source the
configured default for the target is used.

Examples:

Load the bundled foods into DynamoDB:
  flavorbuddy --store dynamodb seed --target foods

Load users from a ConfigMap:
  flavorbuddy seed --target users --source cm://flavor/users`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "target",
				Required: true,
				Usage: fmt.Sprintf("Collection to load (%s, %s)",
					strings.Join(store.SupportedCollections(), ", "), targetAll),
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Seed source URI (default: configured source for the target)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			targets, err := parseTargets(cmd.String("target"))
			if err != nil {
				return err
			}
			source := cmd.String("source")
			if source != "" && len(targets) > 1 {
				return fmt.Errorf("--source requires a single target, got %q", cmd.String("target"))
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

			results := make(seedResults, 0, len(targets))
			for _, t := range targets {
				res, err := a.Loader.Load(ctx, t, source)
				if err != nil {
					return fmt.Errorf("failed to seed %s: %w", t, err)
				}
				results = append(results, res)
			}

			if len(results) == 1 {
				return writeOutput(ctx, cmd, results[0])
			}
			return writeOutput(ctx, cmd, results)
		},
	}
}

func parseTargets(s string) ([]store.Collection, error) {
	if strings.EqualFold(strings.TrimSpace(s), targetAll) {
		return []store.Collection{store.Foods, store.Users}, nil
	}
	c, err := store.ParseCollection(s)
	if err != nil {
		return nil, err
	}
	return []store.Collection{c}, nil
}
