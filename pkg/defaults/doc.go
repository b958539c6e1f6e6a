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

// Package defaults provides centralized configuration constants for Flavor Buddy.
//
// This package defines timeout values, store settings and other configuration
// defaults used across the codebase.
//
// # Timeout Categories
//
//   - Handler timeouts: For ranking and seeding requests
//   - Store timeouts: For record store clients
//   - Server timeouts: For HTTP server configuration
//   - Kubernetes timeouts: For ConfigMap reads and writes
//   - HTTP client timeouts: For fetching remote seed sources
//
// # Usage
//
//	import "github.com/rsiewert/flavor-buddy/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SuggestHandlerTimeout)
//	defer cancel()
package defaults
