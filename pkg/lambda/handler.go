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

package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/rsiewert/flavor-buddy/pkg/envelope"
	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/router"
	"github.com/rsiewert/flavor-buddy/pkg/seed"
)

// Path suffixes routed to Operations; every other path is dispatched to the
// storage router.
const (
	PathRandom = "/foods/random"
	PathSeed   = "/admin/seed"

	// QueryCount overrides the number of random picks.
	QueryCount = "count"
)

// Dispatcher handles a transport-neutral request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req router.Request) envelope.Response
}

// Operations serves the non-storage routes.
type Operations interface {
	RandomPicks(ctx context.Context, count string) (map[string]string, error)
	SeedFromRequest(ctx context.Context, body string) (*seed.Result, error)
}

// Handler serves API Gateway proxy events.
type Handler struct {
	dispatcher Dispatcher
	ops        Operations
}

// Option configures a Handler.
type Option func(*Handler)

// WithOperations routes PathRandom and PathSeed to o.
func WithOperations(o Operations) Option {
	return func(h *Handler) {
		h.ops = o
	}
}

// NewHandler returns a Handler dispatching to d.
func NewHandler(d Dispatcher, opts ...Option) (*Handler, error) {
	if d == nil {
		return nil, fmt.Errorf("dispatcher is nil")
	}
	h := &Handler{dispatcher: d}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

// Handle is the Lambda entry point. It never returns an error: failures are
// reported in the response envelope.
func (h *Handler) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := slog.With("method", ev.HTTPMethod, "path", ev.Path)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("aws_request_id", lc.AwsRequestID)
	}

	req, err := ToRequest(ev)
	if err != nil {
		log.Debug("rejecting undecodable event", "error", err)
		return FromResponse(envelope.Error(err)), nil
	}

	resp := h.route(ctx, ev.Path, req)
	log.Info("request handled", "status", resp.StatusCode, "user", req.UserID)
	return FromResponse(resp), nil
}

func (h *Handler) route(ctx context.Context, path string, req router.Request) envelope.Response {
	if h.ops == nil {
		return h.dispatcher.Dispatch(ctx, req)
	}

	path = strings.TrimSuffix(path, "/")
	switch {
	case strings.HasSuffix(path, PathRandom):
		if req.Method != "GET" {
			return envelope.Error(methodNotAllowed(req.Method))
		}
		picks, err := h.ops.RandomPicks(ctx, req.Query[QueryCount])
		if err != nil {
			return envelope.Error(err)
		}
		return envelope.Success(picks)
	case strings.HasSuffix(path, PathSeed):
		if req.Method != "POST" {
			return envelope.Error(methodNotAllowed(req.Method))
		}
		res, err := h.ops.SeedFromRequest(ctx, req.Body)
		if err != nil {
			return envelope.Error(err)
		}
		return envelope.Success(res)
	default:
		return h.dispatcher.Dispatch(ctx, req)
	}
}

func methodNotAllowed(method string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", map[string]any{"method": method})
}

// ToRequest converts a proxy event into a router request.
func ToRequest(ev events.APIGatewayProxyRequest) (router.Request, error) {
	body := ev.Body
	if ev.IsBase64Encoded && body != "" {
		b, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return router.Request{}, cnserrors.Wrap(cnserrors.ErrCodeParse, "request body is not valid base64", err)
		}
		body = string(b)
	}

	query := make(map[string]string, len(ev.QueryStringParameters))
	for k, vs := range ev.MultiValueQueryStringParameters {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}
	for k, v := range ev.QueryStringParameters {
		query[k] = v
	}

	return router.Request{
		Method: ev.HTTPMethod,
		Body:   body,
		Query:  query,
		UserID: router.UserID(query, func(name string) string { return header(ev.Headers, name) }),
	}, nil
}

// FromResponse converts an envelope into a proxy response.
func FromResponse(r envelope.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       r.Body,
	}
}

// header looks name up case-insensitively; API Gateway forwards header
// names as sent by the client.
func header(h map[string]string, name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
