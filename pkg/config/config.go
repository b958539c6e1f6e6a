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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
	"github.com/rsiewert/flavor-buddy/pkg/store"
	"github.com/rsiewert/flavor-buddy/pkg/suggest"
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(n)
	return nil
}

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.parse(n.Value)
}

// MarshalJSON writes the duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string        `json:"logLevel" yaml:"logLevel"`
	Store    StoreConfig   `json:"store" yaml:"store"`
	Suggest  SuggestConfig `json:"suggest" yaml:"suggest"`
	Seed     SeedConfig    `json:"seed" yaml:"seed"`
	Server   ServerConfig  `json:"server" yaml:"server"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend          string   `json:"backend" yaml:"backend"`
	Region           string   `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint         string   `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	FoodsTable       string   `json:"foodsTable" yaml:"foodsTable"`
	UsersTable       string   `json:"usersTable" yaml:"usersTable"`
	RedisAddr        string   `json:"redisAddr,omitempty" yaml:"redisAddr,omitempty"`
	RedisPrefix      string   `json:"redisPrefix" yaml:"redisPrefix"`
	Breaker          bool     `json:"breaker" yaml:"breaker"`
	BreakerTimeout   Duration `json:"breakerTimeout" yaml:"breakerTimeout"`
	FailureThreshold uint32   `json:"failureThreshold" yaml:"failureThreshold"`
}

// SuggestConfig tunes ranking.
type SuggestConfig struct {
	DefaultUser string `json:"defaultUser" yaml:"defaultUser"`
	TieBreak    string `json:"tieBreak" yaml:"tieBreak"`
	Crosswalk   string `json:"crosswalk,omitempty" yaml:"crosswalk,omitempty"`
	RandomCount int    `json:"randomCount" yaml:"randomCount"`
}

// SeedConfig sets default seed sources and the sentinel shim.
type SeedConfig struct {
	FoodsSource        string `json:"foodsSource" yaml:"foodsSource"`
	UsersSource        string `json:"usersSource" yaml:"usersSource"`
	BootstrapSentinels bool   `json:"bootstrapSentinels" yaml:"bootstrapSentinels"`
	OnStart            bool   `json:"onStart" yaml:"onStart"`
}

// ServerConfig configures the standalone HTTP server.
type ServerConfig struct {
	Port           int     `json:"port" yaml:"port"`
	RateLimit      float64 `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst int     `json:"rateLimitBurst" yaml:"rateLimitBurst"`
}

// Default returns the built-in configuration: in-memory store, embedded
// seed data, sentinels enabled.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Store: StoreConfig{
			Backend:          store.BackendMemory.String(),
			FoodsTable:       defaults.FoodsTable,
			UsersTable:       defaults.UsersTable,
			RedisPrefix:      defaults.RedisKeyPrefix,
			Breaker:          true,
			BreakerTimeout:   Duration(defaults.BreakerTimeout),
			FailureThreshold: defaults.BreakerFailureThreshold,
		},
		Suggest: SuggestConfig{
			DefaultUser: defaults.DefaultUserID,
			TieBreak:    string(suggest.TieBreakStorage),
			RandomCount: defaults.RandomCount,
		},
		Seed: SeedConfig{
			FoodsSource:        seed.SourceEmbedded,
			UsersSource:        seed.SourceEmbedded,
			BootstrapSentinels: true,
		},
		Server: ServerConfig{
			Port:           8080,
			RateLimit:      100,
			RateLimitBurst: 200,
		},
	}
}

// Load returns Default overlaid with the file at path (when non-empty) and
// the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config %s: %w", path, err)
		}
		r, err := serializer.NewReader(serializer.FormatFromPath(path), f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		defer func() { _ = r.Close() }()

		if err := r.Deserialize(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables resolved through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}

	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.Store.Backend, "FLAVOR_STORE")
	str(&c.Store.Region, "FLAVOR_REGION", "AWS_REGION")
	str(&c.Store.Endpoint, "FLAVOR_DYNAMODB_ENDPOINT")
	str(&c.Store.FoodsTable, "FLAVOR_FOODS_TABLE")
	str(&c.Store.UsersTable, "FLAVOR_USERS_TABLE")
	str(&c.Store.RedisAddr, "FLAVOR_REDIS_ADDR", "REDIS_ADDR")
	str(&c.Store.RedisPrefix, "FLAVOR_REDIS_PREFIX")
	str(&c.Suggest.DefaultUser, "FLAVOR_DEFAULT_USER")
	str(&c.Suggest.TieBreak, "FLAVOR_TIE_BREAK")
	str(&c.Suggest.Crosswalk, "FLAVOR_CROSSWALK")
	str(&c.Seed.FoodsSource, "FLAVOR_FOODS_SOURCE")
	str(&c.Seed.UsersSource, "FLAVOR_USERS_SOURCE")

	boolean := func(dst *bool, key string) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = b
		return nil
	}
	if err := boolean(&c.Store.Breaker, "FLAVOR_BREAKER"); err != nil {
		return err
	}
	if err := boolean(&c.Seed.BootstrapSentinels, "FLAVOR_BOOTSTRAP_SENTINELS"); err != nil {
		return err
	}
	if err := boolean(&c.Seed.OnStart, "FLAVOR_SEED_ON_START"); err != nil {
		return err
	}

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("FLAVOR_RATE_LIMIT"); ok && strings.TrimSpace(v) != "" {
		rl, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid FLAVOR_RATE_LIMIT %q: %w", v, err)
		}
		c.Server.RateLimit = rl
	}
	if v, ok := lookup("FLAVOR_RATE_LIMIT_BURST"); ok && strings.TrimSpace(v) != "" {
		burst, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FLAVOR_RATE_LIMIT_BURST %q: %w", v, err)
		}
		c.Server.RateLimitBurst = burst
	}
	return nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	backend, err := store.ParseBackend(c.Store.Backend)
	if err != nil {
		return err
	}
	if _, err := suggest.ParseTieBreak(c.Suggest.TieBreak); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.Server.RateLimitBurst)
	}
	if c.Suggest.RandomCount <= 0 {
		return fmt.Errorf("random count must be positive, got %d", c.Suggest.RandomCount)
	}
	if backend == store.BackendRedis && strings.TrimSpace(c.Store.RedisAddr) == "" {
		return fmt.Errorf("redis backend requires an address")
	}
	return nil
}

// StoreOptions converts the store section into store.Options.
func (c *Config) StoreOptions() store.Options {
	b, err := store.ParseBackend(c.Store.Backend)
	if err != nil {
		b = store.BackendMemory
	}
	return store.Options{
		Backend:        b,
		Region:         c.Store.Region,
		Endpoint:       c.Store.Endpoint,
		FoodsTable:     c.Store.FoodsTable,
		UsersTable:     c.Store.UsersTable,
		RedisAddr:      c.Store.RedisAddr,
		RedisPrefix:    c.Store.RedisPrefix,
		Breaker:        c.Store.Breaker,
		BreakerTimeout: time.Duration(c.Store.BreakerTimeout),
		FailureLimit:   c.Store.FailureThreshold,
	}
}
