package memspy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAttachIdempotentByPid(t *testing.T) {
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return newFakeEngine() })
	ctx := context.Background()

	h0, err := r.attach(ctx, engine, 100)
	require.NoError(t, err)

	_, err = r.attach(ctx, engine, 100)
	require.ErrorIs(t, err, ErrProcessAlreadyAttached)

	target, err := r.resolve(h0)
	require.NoError(t, err)
	require.Equal(t, uint32(100), target.Pid())
}

func TestRegistryDetachIdempotence(t *testing.T) {
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return newFakeEngine() })
	ctx := context.Background()

	_, err := r.detach(200)
	require.ErrorIs(t, err, ErrProcessNotAttached)

	h0, err := r.attach(ctx, engine, 200)
	require.NoError(t, err)

	count, err := r.detach(200)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = r.resolve(h0)
	require.ErrorIs(t, err, ErrInvalidTargetHandle)

	_, err = r.detach(200)
	require.ErrorIs(t, err, ErrProcessNotAttached)
}

func TestRegistryHandleStabilityAcrossReattach(t *testing.T) {
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return newFakeEngine() })
	ctx := context.Background()

	h0, err := r.attach(ctx, engine, 300)
	require.NoError(t, err)

	_, err = r.detach(300)
	require.NoError(t, err)

	h1, err := r.attach(ctx, engine, 300)
	require.NoError(t, err)

	// Option (b): the monotonic counter never reissues h0, even though the
	// same pid was reattached.
	require.NotEqual(t, h0, h1)

	_, err = r.resolve(h0)
	require.ErrorIs(t, err, ErrInvalidTargetHandle)

	target, err := r.resolve(h1)
	require.NoError(t, err)
	require.Equal(t, uint32(300), target.Pid())
}

func TestRegistryOpenFailurePropagates(t *testing.T) {
	fe := newFakeEngine()
	fe.failPid[400] = true
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return fe })

	_, err := r.attach(context.Background(), engine, 400)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrProcessAlreadyAttached))
}

func TestRegistryConcurrentAttachDetach(t *testing.T) {
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return newFakeEngine() })
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	successes := make([]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.attach(ctx, engine, uint32(i))
			successes[i] = err == nil
		}(i)
	}
	wg.Wait()

	for i, ok := range successes {
		require.Truef(t, ok, "attach of distinct pid %d should not fail", i)
	}
}

func TestRegistryResolveSurvivesConcurrentDetach(t *testing.T) {
	r := newRegistry()
	engine := newEngineHolder(func() Engine { return newFakeEngine() })
	ctx := context.Background()

	h, err := r.attach(ctx, engine, 500)
	require.NoError(t, err)

	target, err := r.resolve(h)
	require.NoError(t, err)

	_, err = r.detach(500)
	require.NoError(t, err)

	// The reference resolved before detach remains usable.
	require.Equal(t, uint32(500), target.Pid())
}
