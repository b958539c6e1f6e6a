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

// Package config holds Flavor Buddy runtime settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. Default() values
//  2. an optional JSON or YAML file (Load)
//  3. environment variables (ApplyEnv)
//
// CLI flags are applied on top by pkg/cli.
//
// Environment variables:
//
//	FLAVOR_STORE                memory | dynamodb | redis
//	FLAVOR_REGION, AWS_REGION   DynamoDB region
//	FLAVOR_DYNAMODB_ENDPOINT    DynamoDB endpoint override
//	FLAVOR_FOODS_TABLE          candidate table name
//	FLAVOR_USERS_TABLE          preference table name
//	FLAVOR_REDIS_ADDR, REDIS_ADDR
//	FLAVOR_REDIS_PREFIX
//	FLAVOR_BREAKER              true | false
//	FLAVOR_DEFAULT_USER
//	FLAVOR_TIE_BREAK            storage | id
//	FLAVOR_CROSSWALK            crosswalk file path
//	FLAVOR_FOODS_SOURCE         default candidate seed source
//	FLAVOR_USERS_SOURCE         default preference seed source
//	FLAVOR_BOOTSTRAP_SENTINELS  true | false
//	FLAVOR_SEED_ON_START        true | false
//	FLAVOR_RATE_LIMIT           requests per second
//	FLAVOR_RATE_LIMIT_BURST
//	PORT
//	LOG_LEVEL
//
// Example file:
//
//	store:
//	  backend: dynamodb
//	  region: us-east-1
//	  breakerTimeout: 30s
//	suggest:
//	  defaultUser: User123
//	  tieBreak: id
//	seed:
//	  bootstrapSentinels: false
package config
