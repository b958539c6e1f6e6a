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

// Package router dispatches storage requests by HTTP method.
//
// A Request is transport neutral: the Lambda adapter and the HTTP server
// both build one and hand it to Router.Dispatch, which always returns an
// envelope.Response and never panics out.
//
// Dispatch table:
//
//	POST    parse body, run a seed load for a bootstrap sentinel id,
//	        otherwise put the record             -> "Success"
//	GET     rank candidates for the user         -> {"<id>": rank, ...}
//	DELETE  parse body, delete the record by id  -> "Item deleted successfully"
//	other   UNSUPPORTED_OPERATION "Unsupported HTTP method."
//
// POST and DELETE target the foods collection unless the "collection" query
// parameter names another one. GET ignores every query parameter.
//
// Usage:
//
//	rt, err := router.New(st, engine,
//	    router.WithSeeder(loader),
//	    router.WithDefaultUser("User123"),
//	)
//	resp := rt.Dispatch(ctx, router.Request{Method: "GET", UserID: "User123"})
package router
