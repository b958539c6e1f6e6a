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
	"strings"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// Collection names a group of records.
type Collection string

const (
	// Foods holds candidate records.
	Foods Collection = "foods"
	// Users holds preference records.
	Users Collection = "users"
)

// String returns the string representation of the Collection.
func (c Collection) String() string {
	return string(c)
}

// IsValid reports whether c is a known collection.
func (c Collection) IsValid() bool {
	switch c {
	case Foods, Users:
		return true
	default:
		return false
	}
}

// ParseCollection resolves a collection name, case-insensitively.
// An empty name resolves to Foods.
func ParseCollection(name string) (Collection, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Foods, nil
	}
	c := Collection(n)
	if !c.IsValid() {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown collection %q", name), map[string]any{
				"supported": SupportedCollections(),
			})
	}
	return c, nil
}

// SupportedCollections returns the names of all collections.
func SupportedCollections() []string {
	return []string{Foods.String(), Users.String()}
}

// Store is the record store capability.
//
// Get returns a NOT_FOUND error when the record does not exist. Delete of a
// missing record is not an error. Scan returns every record of the
// collection in backend iteration order. All other failures carry
// STORAGE_FAILURE.
type Store interface {
	Get(ctx context.Context, c Collection, id string) (record.Record, error)
	Put(ctx context.Context, c Collection, r record.Record) error
	Delete(ctx context.Context, c Collection, id string) error
	Scan(ctx context.Context, c Collection) ([]record.Record, error)
}

// Closer is implemented by stores holding network clients.
type Closer interface {
	Close() error
}

func notFound(c Collection, id string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, "record not found", map[string]any{
		"collection": c.String(),
		"id":         id,
	})
}

func storageFailure(op string, c Collection, cause error) error {
	return cnserrors.WrapWithContext(cnserrors.ErrCodeStorage,
		fmt.Sprintf("%s failed", op), cause, map[string]any{
			"collection": c.String(),
		})
}

func validateCollection(c Collection) error {
	if !c.IsValid() {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown collection %q", c))
	}
	return nil
}

func validate(c Collection, id string) error {
	if err := validateCollection(c); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return cnserrors.New(cnserrors.ErrCodeParse, "record id is empty")
	}
	return nil
}
