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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// Redis keeps each collection in one hash; fields are record ids and values
// are JSON documents. Scan returns records ordered by id because hash
// iteration order is unspecified.
type Redis struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedis wraps an existing client.
func NewRedis(rdb goredis.UniversalClient, prefix string) (*Redis, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaults.RedisKeyPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix}, nil
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: defaults.RedisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaults.RedisDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedis(rdb, prefix)
}

// Close releases the underlying client.
func (s *Redis) Close() error {
	return s.rdb.Close()
}

func (s *Redis) key(c Collection) string {
	return s.prefix + ":" + c.String()
}

func (s *Redis) Get(ctx context.Context, c Collection, id string) (record.Record, error) {
	if err := validate(c, id); err != nil {
		return nil, err
	}

	raw, err := s.rdb.HGet(ctx, s.key(c), id).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, notFound(c, id)
	}
	if err != nil {
		return nil, storageFailure("get", c, err)
	}

	r, err := decodeJSON(raw)
	if err != nil {
		return nil, storageFailure("decode", c, err)
	}
	return r, nil
}

func (s *Redis) Put(ctx context.Context, c Collection, r record.Record) error {
	id := r.ID()
	if err := validate(c, id); err != nil {
		return err
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return storageFailure("encode", c, err)
	}
	if err := s.rdb.HSet(ctx, s.key(c), id, raw).Err(); err != nil {
		return storageFailure("put", c, err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, c Collection, id string) error {
	if err := validate(c, id); err != nil {
		return err
	}
	if err := s.rdb.HDel(ctx, s.key(c), id).Err(); err != nil {
		return storageFailure("delete", c, err)
	}
	return nil
}

func (s *Redis) Scan(ctx context.Context, c Collection) ([]record.Record, error) {
	if err := validateCollection(c); err != nil {
		return nil, err
	}

	all, err := s.rdb.HGetAll(ctx, s.key(c)).Result()
	if err != nil {
		return nil, storageFailure("scan", c, err)
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]record.Record, 0, len(ids))
	for _, id := range ids {
		r, err := decodeJSON(all[id])
		if err != nil {
			return nil, storageFailure("decode", c, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeJSON(raw string) (record.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var r record.Record
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}
