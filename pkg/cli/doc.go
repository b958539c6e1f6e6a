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

// Package cli implements the flavorbuddy command-line interface.
//
// # Commands
//
//	flavorbuddy serve   [--port N] [--seed]
//	flavorbuddy seed    --target foods|users|all [--source URI]
//	flavorbuddy suggest [--user ID] [--top N] [--seed]
//	flavorbuddy random  [--count N] [--seed]
//
// serve runs the HTTP API from pkg/api. The other commands wire the same
// components through pkg/app and write a document to --output.
//
// # Global Flags
//
//	--config, -c   Config file (env FLAVOR_CONFIG)
//	--log-level    debug, info, warn, error (env LOG_LEVEL)
//	--store        memory, dynamodb, redis
//
// # Output
//
// seed, suggest and random accept:
//
//	--output, -o   File path or cm://namespace/name (default: stdout)
//	--format, -t   yaml, json, table (default: yaml)
//
// The memory store starts empty in every process; pass --seed to load the
// configured default sources first.
//
// # Version
//
// Version details are set at build time:
//
//	go build -ldflags="-X github.com/rsiewert/flavor-buddy/pkg/cli.version=1.0.0"
package cli
