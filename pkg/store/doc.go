// Package store provides the record store the router, the suggestion engine
// and the seed loader share.
//
// The Store interface is deliberately small: get, put, delete and a full
// scan per collection. Callers receive a Store at construction time, so the
// in-memory backend can stand in for DynamoDB or Redis in tests.
//
// Backends:
//
//   - Memory: process-local, preserves insertion order on Scan
//   - DynamoDB: one table per collection, partition key "id"
//   - Redis: one hash per collection, JSON encoded values
//
// Decorators:
//
//   - WithCircuitBreaker: fails fast with SERVICE_UNAVAILABLE while the
//     backend keeps returning storage failures
//   - WithMetrics: Prometheus latency and error counters per operation
//
// Open builds a fully decorated Store from Options.
package store
