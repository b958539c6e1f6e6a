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

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rsiewert/flavor-buddy/pkg/app"
	"github.com/rsiewert/flavor-buddy/pkg/envelope"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/router"
)

// QueryCount overrides the number of random picks.
const QueryCount = "count"

// Handlers exposes the wired components over HTTP.
type Handlers struct {
	app *app.App
}

// NewHandlers returns handlers over a.
func NewHandlers(a *app.App) (*Handlers, error) {
	if a == nil {
		return nil, fmt.Errorf("app is nil")
	}
	return &Handlers{app: a}, nil
}

// Routes maps paths to handlers for server.WithHandler.
func (h *Handlers) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/storage":      h.HandleStorage,
		"/v1/foods/random": h.HandleRandom,
		"/v1/admin/seed":   h.HandleSeed,
	}
}

// HandleStorage converts the HTTP request to a router request and writes
// the envelope back.
func (h *Handlers) HandleStorage(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		envelope.Write(w, envelope.Error(err))
		return
	}

	query := make(map[string]string, len(r.URL.Query()))
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}

	envelope.Write(w, h.app.Router.Dispatch(r.Context(), router.Request{
		Method: r.Method,
		Body:   body,
		Query:  query,
		UserID: router.UserID(query, r.Header.Get),
	}))
}

// HandleRandom returns random candidate ids.
func (h *Handlers) HandleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		envelope.Write(w, envelope.Error(methodNotAllowed(r)))
		return
	}

	picks, err := h.app.RandomPicks(r.Context(), r.URL.Query().Get(QueryCount))
	if err != nil {
		envelope.Write(w, envelope.Error(err))
		return
	}
	envelope.Write(w, envelope.Success(picks))
}

// HandleSeed runs an explicit seed load from a named source.
func (h *Handlers) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		envelope.Write(w, envelope.Error(methodNotAllowed(r)))
		return
	}

	body, err := readBody(r)
	if err != nil {
		envelope.Write(w, envelope.Error(err))
		return
	}

	res, err := h.app.SeedFromRequest(r.Context(), body)
	if err != nil {
		envelope.Write(w, envelope.Error(err))
		return
	}
	envelope.Write(w, envelope.Success(res))
}

func readBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"request body too large", map[string]any{"limit": mbe.Limit})
		}
		return "", cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	return string(b), nil
}

func methodNotAllowed(r *http.Request) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", map[string]any{"method": r.Method})
}
