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

package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rsiewert/flavor-buddy/pkg/defaults"
	"github.com/rsiewert/flavor-buddy/pkg/envelope"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
	"github.com/rsiewert/flavor-buddy/pkg/store"
	"github.com/rsiewert/flavor-buddy/pkg/suggest"
)

// Response messages.
const (
	MsgSuccess     = "Success"
	MsgDeleted     = "Item deleted successfully"
	MsgUnsupported = "Unsupported HTTP method."
)

// QueryCollection selects the collection for POST and DELETE.
const QueryCollection = "collection"

// Request attributes carrying the user id.
const (
	QueryUserID  = "userId"
	HeaderUserID = "X-User-Id"
)

// UserID extracts the user id from the userId query parameter, falling back
// to the X-User-Id header resolved through header. Empty means the router's
// default user.
func UserID(query map[string]string, header func(name string) string) string {
	if user := strings.TrimSpace(query[QueryUserID]); user != "" {
		return user
	}
	if header == nil {
		return ""
	}
	return strings.TrimSpace(header(HeaderUserID))
}

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "flavorbuddy_router_requests_total",
		Help: "Total number of dispatched storage requests by method and status",
	},
	[]string{"method", "status"},
)

// Request is a transport-neutral storage request.
type Request struct {
	Method string
	Body   string
	Query  map[string]string
	UserID string
}

// Ranker produces a ranking for a user.
type Ranker interface {
	Rank(ctx context.Context, userID string) (suggest.Ranking, error)
}

// Seeder bulk-loads a collection from a source.
type Seeder interface {
	Load(ctx context.Context, target store.Collection, source string) (*seed.Result, error)
}

// Router dispatches Requests to the create, rank and delete handlers.
type Router struct {
	store       store.Store
	ranker      Ranker
	seeder      Seeder
	defaultUser string
	sentinels   bool

	suggestTimeout time.Duration
	storageTimeout time.Duration
	seedTimeout    time.Duration
}

// Option configures a Router.
type Option func(*Router)

// WithSeeder sets the loader used for bootstrap sentinel ids.
func WithSeeder(s Seeder) Option {
	return func(r *Router) {
		r.seeder = s
	}
}

// WithDefaultUser sets the user ranked when a request carries none.
func WithDefaultUser(id string) Option {
	return func(r *Router) {
		if id = strings.TrimSpace(id); id != "" {
			r.defaultUser = id
		}
	}
}

// WithSentinels enables or disables the bootstrap sentinel path. When
// disabled, sentinel ids are stored like any other record.
func WithSentinels(enabled bool) Option {
	return func(r *Router) {
		r.sentinels = enabled
	}
}

// WithTimeouts overrides the per-handler deadlines. Zero values keep the
// defaults.
func WithTimeouts(suggestTimeout, storageTimeout, seedTimeout time.Duration) Option {
	return func(r *Router) {
		if suggestTimeout > 0 {
			r.suggestTimeout = suggestTimeout
		}
		if storageTimeout > 0 {
			r.storageTimeout = storageTimeout
		}
		if seedTimeout > 0 {
			r.seedTimeout = seedTimeout
		}
	}
}

// New returns a Router over s and ranker. Sentinels are enabled by default
// but only take effect once a Seeder is configured.
func New(s store.Store, ranker Ranker, opts ...Option) (*Router, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if ranker == nil {
		return nil, fmt.Errorf("ranker is nil")
	}

	r := &Router{
		store:          s,
		ranker:         ranker,
		defaultUser:    defaults.DefaultUserID,
		sentinels:      true,
		suggestTimeout: defaults.SuggestHandlerTimeout,
		storageTimeout: defaults.StorageHandlerTimeout,
		seedTimeout:    defaults.SeedHandlerTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dispatch routes req by method and converts the outcome into an envelope.
func (r *Router) Dispatch(ctx context.Context, req Request) (resp envelope.Response) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))

	defer func() {
		if p := recover(); p != nil {
			slog.Error("panic while dispatching request",
				"method", method,
				"panic", p)
			resp = envelope.Error(cnserrors.New(cnserrors.ErrCodeInternal, "internal server error"))
		}
		requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	}()

	slog.Debug("dispatching request", "method", method, "user", req.UserID)

	var (
		payload any
		err     error
	)
	switch method {
	case "POST":
		payload, err = r.create(ctx, req)
	case "GET":
		payload, err = r.suggest(ctx, req)
	case "DELETE":
		payload, err = r.remove(ctx, req)
	default:
		err = cnserrors.NewWithContext(cnserrors.ErrCodeUnsupportedOperation, MsgUnsupported,
			map[string]any{"method": req.Method})
	}

	if err != nil {
		return envelope.Error(err)
	}
	return envelope.Success(payload)
}

func (r *Router) create(ctx context.Context, req Request) (any, error) {
	rec, err := record.Parse(req.Body)
	if err != nil {
		return nil, err
	}

	if target, ok := seed.SentinelTarget(rec.ID()); ok && r.sentinels && r.seeder != nil {
		ctx, cancel := context.WithTimeout(ctx, r.seedTimeout)
		defer cancel()

		slog.Info("bootstrap sentinel received", "target", target.String())
		if _, err := r.seeder.Load(ctx, target, ""); err != nil {
			return nil, deadline(ctx, err)
		}
		return MsgSuccess, nil
	}

	c, err := collection(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.storageTimeout)
	defer cancel()

	if err := r.store.Put(ctx, c, rec); err != nil {
		return nil, deadline(ctx, err)
	}
	slog.Debug("record stored", "collection", c.String(), "id", rec.ID())
	return MsgSuccess, nil
}

func (r *Router) suggest(ctx context.Context, req Request) (any, error) {
	user := strings.TrimSpace(req.UserID)
	if user == "" {
		user = r.defaultUser
	}

	ctx, cancel := context.WithTimeout(ctx, r.suggestTimeout)
	defer cancel()

	ranking, err := r.ranker.Rank(ctx, user)
	if err != nil {
		return nil, deadline(ctx, err)
	}
	return ranking, nil
}

func (r *Router) remove(ctx context.Context, req Request) (any, error) {
	rec, err := record.Parse(req.Body)
	if err != nil {
		return nil, err
	}

	c, err := collection(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.storageTimeout)
	defer cancel()

	if err := r.store.Delete(ctx, c, rec.ID()); err != nil {
		return nil, deadline(ctx, err)
	}
	slog.Debug("record deleted", "collection", c.String(), "id", rec.ID())
	return MsgDeleted, nil
}

func collection(req Request) (store.Collection, error) {
	name := strings.TrimSpace(req.Query[QueryCollection])
	if name == "" {
		return store.Foods, nil
	}
	c, err := store.ParseCollection(name)
	if err != nil {
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid collection", err, map[string]any{"supported": store.SupportedCollections()})
	}
	return c, nil
}

// deadline reports a handler that ran out of time as TIMEOUT.
func deadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return cnserrors.Wrap(cnserrors.ErrCodeTimeout, "request timed out", err)
	}
	return err
}
