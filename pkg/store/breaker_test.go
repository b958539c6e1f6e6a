package store

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// flakyStore fails every call with err.
type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) Get(context.Context, Collection, string) (record.Record, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyStore) Put(context.Context, Collection, record.Record) error {
	f.calls++
	return f.err
}

func (f *flakyStore) Delete(context.Context, Collection, string) error {
	f.calls++
	return f.err
}

func (f *flakyStore) Scan(context.Context, Collection) ([]record.Record, error) {
	f.calls++
	return nil, f.err
}

func testBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
}

func TestBreakerPassesThrough(t *testing.T) {
	testStoreBehavior(t, WithBreaker(NewMemory(), testBreakerSettings()))
}

func TestBreakerOpensOnStorageFailures(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyStore{err: storageFailure("scan", Foods, errors.New("connection reset"))}
	b := WithBreaker(flaky, testBreakerSettings())

	for range 3 {
		_, err := b.Scan(ctx, Foods)
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeStorage))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Scan(ctx, Foods)
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeUnavailable))
	assert.Equal(t, 3, flaky.calls, "open breaker must not reach the backend")
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyStore{err: notFound(Users, "nobody")}
	b := WithBreaker(flaky, testBreakerSettings())

	for range 10 {
		_, err := b.Get(ctx, Users, "nobody")
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestInstrumentedPassesThrough(t *testing.T) {
	testStoreBehavior(t, WithMetrics(NewMemory(), "memory"))
}
