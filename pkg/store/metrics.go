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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

var (
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flavorbuddy_store_operation_duration_seconds",
			Help:    "Record store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "collection"},
	)

	operationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flavorbuddy_store_operation_errors_total",
			Help: "Total number of failed record store operations by error code",
		},
		[]string{"backend", "operation", "collection", "code"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flavorbuddy_store_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// Instrumented records latency and error counts for every call to the
// wrapped store.
type Instrumented struct {
	next    Store
	backend string
}

// WithMetrics wraps next with Prometheus instrumentation labelled by backend.
func WithMetrics(next Store, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

// Close closes the wrapped store when it holds a client.
func (m *Instrumented) Close() error {
	if c, ok := m.next.(Closer); ok {
		return c.Close()
	}
	return nil
}

func (m *Instrumented) observe(op string, c Collection, start time.Time, err error) {
	operationDuration.WithLabelValues(m.backend, op, c.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		operationErrors.WithLabelValues(m.backend, op, c.String(), string(cnserrors.CodeOf(err))).Inc()
	}
}

func (m *Instrumented) Get(ctx context.Context, c Collection, id string) (record.Record, error) {
	start := time.Now()
	r, err := m.next.Get(ctx, c, id)
	m.observe("get", c, start, err)
	return r, err
}

func (m *Instrumented) Put(ctx context.Context, c Collection, r record.Record) error {
	start := time.Now()
	err := m.next.Put(ctx, c, r)
	m.observe("put", c, start, err)
	return err
}

func (m *Instrumented) Delete(ctx context.Context, c Collection, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, c, id)
	m.observe("delete", c, start, err)
	return err
}

func (m *Instrumented) Scan(ctx context.Context, c Collection) ([]record.Record, error) {
	start := time.Now()
	rs, err := m.next.Scan(ctx, c)
	m.observe("scan", c, start, err)
	return rs, err
}
