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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/storage": ok}))
	require.NotNil(t, s)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.Contains(t, s.config.Handlers, "/v1/storage")
	assert.Contains(t, s.config.Handlers, "/")
	assert.Equal(t, "server", s.config.Name)
}

func TestOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "flavorbuddy-test"
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithHandler(map[string]http.HandlerFunc{"/a": ok}),
		WithConfig(cfg),
		WithVersion("v9"),
	)

	assert.Equal(t, "flavorbuddy-test", s.config.Name)
	assert.Equal(t, "v9", s.config.Version)
	assert.Equal(t, 9090, s.config.Port)
	assert.EqualValues(t, 500, s.config.RateLimit)
	assert.Contains(t, s.config.Handlers, "/a", "handlers added before WithConfig survive")
}

func TestHealthAndReady(t *testing.T) {
	s := New()

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	for _, ready := range []bool{true, false} {
		s.setReady(ready)
		rec = httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if ready {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		}
	}
}

func TestReadyProbe(t *testing.T) {
	cfg := NewConfig()
	var probeErr error
	cfg.ReadinessProbe = func(context.Context) error { return probeErr }
	s := New(WithConfig(cfg))
	s.setReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	probeErr = errors.New("dynamodb: connection refused")
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "dynamodb: connection refused", body.Reason)
}

func TestDefaultRootHandler(t *testing.T) {
	s := New(WithName("flavorbuddy"), WithHandler(map[string]http.HandlerFunc{"/v1/storage": ok}))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "flavorbuddy", body.Name)
	assert.Equal(t, []string{"/", "/health", "/metrics", "/ready", "/v1/storage"}, body.Routes)

	resp2, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	resp3, err := http.Post(srv.URL+"/", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp3.StatusCode)
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/storage": ok}))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/v1/storage")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "flavorbuddy_http_requests_total")
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{"/v1/storage": ok}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	require.Eventually(t, func() bool { return s.Addr() != "" }, time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + s.Addr() + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
}
