package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Wait_Spacing(t *testing.T) {
	t.Parallel()

	const delay = 30 * time.Millisecond
	l := crawl.NewLimiter(delay, delay, time.Second)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))
	l.Observe(200)

	begin := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(begin), delay,
		"consecutive requests must be spaced by at least the minimum delay")
}

func TestLimiter_Observe_Throttled(t *testing.T) {
	t.Parallel()

	const (
		delay    = 5 * time.Millisecond
		cooldown = 80 * time.Millisecond
	)
	l := crawl.NewLimiter(delay, delay, cooldown)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))
	l.Observe(429)

	begin := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(begin), cooldown,
		"a 429 must hold the next request back for at least the cool-down")
}

func TestLimiter_Observe_RecoversAfterThrottle(t *testing.T) {
	t.Parallel()

	const (
		delay    = 5 * time.Millisecond
		cooldown = 50 * time.Millisecond
	)
	l := crawl.NewLimiter(delay, delay, cooldown)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))
	l.Observe(429)
	require.NoError(t, l.Wait(ctx))

	// A successful response resets the interval to the normal window.
	l.Observe(200)
	begin := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.Less(t, time.Since(begin), cooldown)
}

func TestLimiter_Wait_ContextCanceled(t *testing.T) {
	t.Parallel()

	l := crawl.NewLimiter(time.Second, time.Second, time.Second)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, l.Wait(canceled))
}

func TestLimiter_Defaults(t *testing.T) {
	t.Parallel()

	l := crawl.NewLimiter(0, 0, 0)
	require.NotNil(t, l)
	assert.NoError(t, l.Wait(context.Background()))
}
