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
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// BreakerSettings configures the circuit breaker wrapped around a backend.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// Breaker trips after consecutive STORAGE_FAILURE errors from the wrapped
// store. NOT_FOUND and validation errors count as successes. While open,
// every call fails fast with SERVICE_UNAVAILABLE.
type Breaker struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

// WithBreaker wraps next in a circuit breaker.
func WithBreaker(next Store, s BreakerSettings) *Breaker {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !cnserrors.IsCode(err, cnserrors.ErrCodeStorage)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("store circuit breaker state change",
				"name", name,
				"from", from.String(),
				"to", to.String())
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	breakerState.WithLabelValues(s.Name).Set(stateValue(gobreaker.StateClosed))

	return &Breaker{next: next, cb: cb}
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Close closes the wrapped store when it holds a client.
func (b *Breaker) Close() error {
	if c, ok := b.next.(Closer); ok {
		return c.Close()
	}
	return nil
}

func (b *Breaker) execute(c Collection, fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
			"record store temporarily unavailable", err, map[string]any{
				"collection": c.String(),
			})
	}
	return res, err
}

func (b *Breaker) Get(ctx context.Context, c Collection, id string) (record.Record, error) {
	res, err := b.execute(c, func() (any, error) {
		return b.next.Get(ctx, c, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(record.Record), nil
}

func (b *Breaker) Put(ctx context.Context, c Collection, r record.Record) error {
	_, err := b.execute(c, func() (any, error) {
		return nil, b.next.Put(ctx, c, r)
	})
	return err
}

func (b *Breaker) Delete(ctx context.Context, c Collection, id string) error {
	_, err := b.execute(c, func() (any, error) {
		return nil, b.next.Delete(ctx, c, id)
	})
	return err
}

func (b *Breaker) Scan(ctx context.Context, c Collection) ([]record.Record, error) {
	res, err := b.execute(c, func() (any, error) {
		return b.next.Scan(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return res.([]record.Record), nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
