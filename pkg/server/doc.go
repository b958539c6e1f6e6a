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

// Package server is the HTTP front end shared by the Flavor Buddy API.
//
// It mounts caller-supplied handlers behind a middleware chain and adds
// probe and metrics endpoints of its own.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("flavorbuddy"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/storage": handleStorage,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT, SIGTERM or ctx cancellation and then drains
// connections within Config.ShutdownTimeout.
//
// # Middleware
//
// Every handler passed through WithHandler is wrapped, outermost first, in:
//
//   - metrics: flavorbuddy_http_* counters and latency histogram
//   - version: X-API-Version from Accept: application/vnd.flavorbuddy.v1+json
//   - request id: X-Request-Id kept when it is a UUID, generated otherwise
//   - panic recovery: 500 INTERNAL instead of a dropped connection
//   - rate limit: token bucket, 429 with Retry-After when exhausted
//   - CORS: Access-Control-Allow-* headers, OPTIONS answered with 204
//   - body limit: Config.MaxBodyBytes
//   - logging: debug-level start and completion records
//
// # System endpoints
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until listening and during shutdown
//	GET /metrics  Prometheus exposition
//	GET /         name, version and mounted routes
//
// # Errors
//
// Errors raised by the server itself use ErrorResponse:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "details": {"limit": 100, "burst": 200},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": true
//	}
//
// WriteErrorFromErr derives the status and retryability from a
// pkg/errors.StructuredError code.
//
// # Environment
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
package server
