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

package defaults

import "time"

// Handler timeouts for request processing.
const (
	// SuggestHandlerTimeout bounds a single ranking request, including the
	// user lookup and the full candidate scan.
	SuggestHandlerTimeout = 15 * time.Second

	// StorageHandlerTimeout bounds a single create or delete request.
	StorageHandlerTimeout = 10 * time.Second

	// SeedHandlerTimeout bounds a bulk seed load. Longer than the other
	// handlers because every record is a separate write.
	SeedHandlerTimeout = 60 * time.Second
)

// Store settings.
const (
	// StoreOperationTimeout is the per-call timeout applied by store clients
	// when the caller context has no earlier deadline.
	StoreOperationTimeout = 5 * time.Second

	// RedisDialTimeout is the timeout for connecting to and pinging Redis.
	RedisDialTimeout = 5 * time.Second

	// RedisKeyPrefix prefixes the per-collection hash keys.
	RedisKeyPrefix = "flavorbuddy"

	// FoodsTable is the default DynamoDB table for candidate records.
	FoodsTable = "Foods"

	// UsersTable is the default DynamoDB table for preference records.
	UsersTable = "Users"

	// BreakerMaxRequests is the number of probe requests allowed while the
	// circuit breaker is half-open.
	BreakerMaxRequests = 1

	// BreakerInterval is the cyclic period of the closed state after which
	// failure counts are cleared.
	BreakerInterval = 60 * time.Second

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout = 30 * time.Second

	// BreakerFailureThreshold is the number of consecutive storage failures
	// that opens the breaker.
	BreakerFailureThreshold = 5
)

// Suggestion defaults.
const (
	// DefaultUserID is used when a request carries no user id.
	DefaultUserID = "User123"

	// RandomCount is the number of random candidates returned by default.
	RandomCount = 3
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 90 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ReadinessProbeTimeout bounds the dependency check behind /ready.
	ReadinessProbeTimeout = 2 * time.Second

	// ServerMaxBodyBytes caps request payloads.
	ServerMaxBodyBytes = 1 << 20
)

// Kubernetes timeouts for K8s API operations.
const (
	// K8sConfigMapTimeout is the timeout for ConfigMap reads and writes.
	K8sConfigMapTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)
