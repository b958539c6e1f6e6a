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

package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
)

// Backend names a store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendDynamoDB Backend = "dynamodb"
	BackendRedis    Backend = "redis"
)

// String returns the string representation of the Backend.
func (b Backend) String() string {
	return string(b)
}

// SupportedBackends returns all backend names.
func SupportedBackends() []string {
	return []string{BackendMemory.String(), BackendDynamoDB.String(), BackendRedis.String()}
}

// ParseBackend resolves a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendMemory, BackendDynamoDB, BackendRedis:
		return b, nil
	case "":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unsupported store backend %q, supported: %s",
			name, strings.Join(SupportedBackends(), ", "))
	}
}

// Options selects and configures a backend.
type Options struct {
	Backend Backend

	// DynamoDB
	Region     string
	Endpoint   string
	FoodsTable string
	UsersTable string

	// Redis
	RedisAddr   string
	RedisPrefix string

	// Breaker wraps network backends when enabled.
	Breaker        bool
	BreakerTimeout time.Duration
	FailureLimit   uint32
}

// DefaultOptions returns the in-memory backend with default table names and
// breaker settings.
func DefaultOptions() Options {
	return Options{
		Backend:        BackendMemory,
		FoodsTable:     defaults.FoodsTable,
		UsersTable:     defaults.UsersTable,
		RedisPrefix:    defaults.RedisKeyPrefix,
		Breaker:        true,
		BreakerTimeout: defaults.BreakerTimeout,
		FailureLimit:   defaults.BreakerFailureThreshold,
	}
}

// Open constructs the configured backend, instrumented with metrics and,
// for network backends, wrapped in a circuit breaker.
func Open(ctx context.Context, o Options) (Store, error) {
	var s Store

	switch o.Backend {
	case BackendMemory, "":
		s = NewMemory()
	case BackendDynamoDB:
		client, err := NewDynamoDBClient(ctx, o.Region, o.Endpoint)
		if err != nil {
			return nil, err
		}
		d, err := NewDynamoDB(client, map[Collection]string{
			Foods: nonEmpty(o.FoodsTable, defaults.FoodsTable),
			Users: nonEmpty(o.UsersTable, defaults.UsersTable),
		})
		if err != nil {
			return nil, err
		}
		s = d
	case BackendRedis:
		r, err := DialRedis(ctx, o.RedisAddr, o.RedisPrefix)
		if err != nil {
			return nil, err
		}
		s = r
	default:
		return nil, fmt.Errorf("unsupported store backend %q", o.Backend)
	}

	backend := o.Backend
	if backend == "" {
		backend = BackendMemory
	}

	s = WithMetrics(s, backend.String())

	if o.Breaker && backend != BackendMemory {
		s = WithBreaker(s, BreakerSettings{
			Name:             "store-" + backend.String(),
			MaxRequests:      defaults.BreakerMaxRequests,
			Interval:         defaults.BreakerInterval,
			Timeout:          nonZero(o.BreakerTimeout, defaults.BreakerTimeout),
			FailureThreshold: o.FailureLimit,
		})
	}

	slog.Debug("record store opened", "backend", backend.String(), "breaker", o.Breaker)

	return s, nil
}

// Close releases s when it holds a network client.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

func nonEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func nonZero(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
