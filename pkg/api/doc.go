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

// Package api serves the Flavor Buddy HTTP API on top of pkg/server.
//
// Usage:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//	return api.Serve(ctx, cfg, version)
//
// # Endpoints
//
// Application endpoints (middleware chain, rate limited):
//
//	POST   /v1/storage        create a record; bootstrap sentinel ids seed
//	GET    /v1/storage        rank candidates for ?userId= or X-User-Id
//	DELETE /v1/storage        delete the record named in the body
//	GET    /v1/foods/random   ?count=N random candidate ids (default 3)
//	POST   /v1/admin/seed     {"target":"foods|users","source":"default|embedded"}
//
// The seed source is a name, never a path or URL; free-form sources are
// only accepted by the CLI seed command.
//
// System endpoints come from pkg/server: /health, /ready, /metrics and /.
//
// Storage, random and seed responses use the envelope format
// {"message": ...} with CORS headers, identical to the Lambda transport:
//
//	curl -s localhost:8080/v1/storage?userId=User123
//	{"message":{"apple":3,"pretzel":1,"kimchi":2}}
//
// POST and DELETE accept ?collection=users to maintain preference records.
package api
