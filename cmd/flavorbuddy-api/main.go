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

package main

import (
	"context"
	"log"
	"os"

	"github.com/rsiewert/flavor-buddy/pkg/api"
	"github.com/rsiewert/flavor-buddy/pkg/config"
	"github.com/rsiewert/flavor-buddy/pkg/logging"
)

const name = "flavorbuddy-api"

// overridden during build with ldflags
var version = "dev"

func main() {
	logging.SetDefaultStructuredLogger(name, version)

	cfg, err := config.Load(os.Getenv("FLAVOR_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)

	if err := api.Serve(context.Background(), cfg, version); err != nil {
		log.Fatal(err)
	}
}
