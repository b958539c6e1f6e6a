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
	"log/slog"
	"net/http"
	"time"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/serializer"
)

// HealthResponse is the body of the probe endpoints.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// handleHealth handles GET /health. The process answering is enough.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"allowed": http.MethodGet})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// handleReady handles GET /ready. It fails until Start has bound the
// listener, again once shutdown begins, and whenever the readiness probe
// reports an error.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"allowed": http.MethodGet})
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		notReady(w, "service is not accepting traffic")
		return
	}

	if probe := s.config.ReadinessProbe; probe != nil {
		ctx, cancel := context.WithTimeout(r.Context(), defaults.ReadinessProbeTimeout)
		defer cancel()
		if err := probe(ctx); err != nil {
			slog.Warn("readiness probe failed", "error", err)
			notReady(w, err.Error())
			return
		}
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}

func notReady(w http.ResponseWriter, reason string) {
	serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
		Status:    "not_ready",
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}
