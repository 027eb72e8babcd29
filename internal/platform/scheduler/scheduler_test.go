package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RegisterInvalidSpec(t *testing.T) {
	t.Parallel()

	s := New(context.Background())
	err := s.Register("warmup", "not a cron spec", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_AcceptsSpecForms(t *testing.T) {
	t.Parallel()

	s := New(context.Background())
	for _, spec := range []string{"@every 55s", "*/5 * * * *", "0 */5 * * * *", "@hourly"} {
		require.NoError(t, s.Register(spec, spec, func(context.Context) error { return nil }), spec)
	}
	assert.Equal(t, 4, s.Len())
}

func TestScheduler_RunNow(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	s := New(ctx)

	var calls atomic.Int32
	require.NoError(t, s.Register("warmup", "@hourly", func(got context.Context) error {
		calls.Add(1)
		assert.Equal(t, "v", got.Value(ctxKey{}))
		return errors.New("upstream down")
	}))

	// エラーはログに出るだけで呼び出し元には返らない
	require.NoError(t, s.RunNow("warmup"))
	assert.Equal(t, int32(1), calls.Load())

	assert.Error(t, s.RunNow("missing"))
}

func TestScheduler_SkipsWhenContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx)
	var calls atomic.Int32
	require.NoError(t, s.Register("warmup", "@hourly", func(context.Context) error {
		calls.Add(1)
		return nil
	}))

	cancel()
	require.NoError(t, s.RunNow("warmup"))
	assert.Zero(t, calls.Load())
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	t.Parallel()

	s := New(context.Background())
	fired := make(chan struct{}, 1)
	require.NoError(t, s.Register("tick", "@every 1s", func(context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("task did not fire")
	}
}
