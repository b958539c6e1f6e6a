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

// Package lambda adapts API Gateway proxy events to router requests.
//
// The user id is taken from the userId query parameter, then the X-User-Id
// header. Base64 encoded bodies are decoded before dispatch.
//
// With WithOperations, paths ending in /foods/random (GET) and /admin/seed
// (POST) are served by the operations; every other path goes to the router.
//
//	h, err := lambda.NewHandler(a.Router, lambda.WithOperations(a))
//	if err != nil {
//	    return err
//	}
//	awslambda.Start(h.Handle)
package lambda
