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
	"slices"
	"sync"

	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// Memory is a process-local Store. Scan returns records in first-insert order;
// overwriting a record keeps its position.
type Memory struct {
	mu          sync.RWMutex
	collections map[Collection]*memCollection
}

type memCollection struct {
	order []string
	items map[string]record.Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: map[Collection]*memCollection{
			Foods: {items: map[string]record.Record{}},
			Users: {items: map[string]record.Record{}},
		},
	}
}

func (m *Memory) Get(ctx context.Context, c Collection, id string) (record.Record, error) {
	if err := validate(c, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, storageFailure("get", c, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.collections[c].items[id]
	if !ok {
		return nil, notFound(c, id)
	}
	return r.Clone(), nil
}

func (m *Memory) Put(ctx context.Context, c Collection, r record.Record) error {
	id := r.ID()
	if err := validate(c, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storageFailure("put", c, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collections[c]
	if _, exists := col.items[id]; !exists {
		col.order = append(col.order, id)
	}
	col.items[id] = r.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, c Collection, id string) error {
	if err := validate(c, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storageFailure("delete", c, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collections[c]
	if _, exists := col.items[id]; !exists {
		return nil
	}
	delete(col.items, id)
	if i := slices.Index(col.order, id); i >= 0 {
		col.order = slices.Delete(col.order, i, i+1)
	}
	return nil
}

func (m *Memory) Scan(ctx context.Context, c Collection) ([]record.Record, error) {
	if err := validateCollection(c); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, storageFailure("scan", c, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	col := m.collections[c]
	out := make([]record.Record, 0, len(col.order))
	for _, id := range col.order {
		out = append(out, col.items[id].Clone())
	}
	return out, nil
}
