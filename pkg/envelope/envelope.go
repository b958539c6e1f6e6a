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

// Package envelope produces the uniform response every request path returns:
// a status code, CORS headers, and a JSON body carrying either the payload
// or the error.
package envelope

import (
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
)

// Header names and values set on every response.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderContentType  = "Content-Type"

	AllowOrigin  = "*"
	AllowHeaders = "Content-Type"
	AllowMethods = "OPTIONS,POST,GET,DELETE"
	ContentType  = "application/json"
)

// Response is a transport-neutral HTTP response.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Body is the decoded form of Response.Body.
type Body struct {
	Message any                 `json:"message"`
	Code    cnserrors.ErrorCode `json:"code,omitempty"`
}

// Headers returns a fresh copy of the headers set on every response.
func Headers() map[string]string {
	return map[string]string{
		HeaderAllowOrigin:  AllowOrigin,
		HeaderAllowHeaders: AllowHeaders,
		HeaderAllowMethods: AllowMethods,
		HeaderContentType:  ContentType,
	}
}

// Success wraps payload in a 200 response with body {"message": payload}.
func Success(payload any) Response {
	body, err := json.Marshal(Body{Message: payload})
	if err != nil {
		return Error(cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to encode response", err))
	}
	return Response{
		StatusCode: http.StatusOK,
		Headers:    Headers(),
		Body:       string(body),
	}
}

// Message is Success with a plain text payload.
func Message(text string) Response {
	return Success(text)
}

// Error converts err into a response whose status is derived from its code.
// Errors without a code are reported as INTERNAL without exposing their text.
func Error(err error) Response {
	code := cnserrors.CodeOf(err)
	if code == "" {
		code = cnserrors.ErrCodeInternal
	}

	msg := "internal server error"
	if se, ok := cnserrors.As(err); ok {
		msg = se.Message
	}

	status := StatusFromCode(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "code", code, "error", err)
	} else {
		slog.Debug("request rejected", "code", code, "error", err)
	}

	// Body holds only strings, encoding cannot fail.
	body, _ := json.Marshal(Body{Message: msg, Code: code})
	return Response{
		StatusCode: status,
		Headers:    Headers(),
		Body:       string(body),
	}
}

// StatusFromCode maps an error code to its HTTP status.
func StatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeParse, cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cnserrors.ErrCodeUnsupportedOperation, cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Write copies r onto an http.ResponseWriter.
func Write(w http.ResponseWriter, r Response) {
	for k, v := range r.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(r.StatusCode)
	if _, err := w.Write([]byte(r.Body)); err != nil {
		slog.Warn("failed to write response body", "error", err)
	}
}

// WithHeaders returns a copy of r with extra headers merged in.
func (r Response) WithHeaders(h map[string]string) Response {
	out := r
	out.Headers = maps.Clone(r.Headers)
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	maps.Copy(out.Headers, h)
	return out
}

// Decode parses the response body.
func (r Response) Decode() (Body, error) {
	var b Body
	err := json.Unmarshal([]byte(r.Body), &b)
	return b, err
}
