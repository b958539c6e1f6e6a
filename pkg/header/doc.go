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

// Package header provides the Kubernetes-style envelope carried by documents
// the CLI writes (rankings, random picks, seed results).
//
//	type Ranking struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Items []suggest.Scored `json:"items" yaml:"items"`
//	}
//
//	r := &Ranking{}
//	r.Init(header.KindRanking, header.APIVersion, version)
//
// Serialized:
//
//	kind: Ranking
//	apiVersion: flavorbuddy.dev/v1
//	metadata:
//	  timestamp: "2026-01-02T15:04:05Z"
//	  version: v1.0.0
//
// The ConfigMap writer in pkg/serializer reads Kind and the version and
// timestamp metadata to label what it stores.
package header
