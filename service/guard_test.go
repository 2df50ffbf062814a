package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardSerializesSameUser(t *testing.T) {
	guard := NewGuard()
	ctx := context.Background()

	var inside int
	var maxInside int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := guard.Acquire(ctx, 42)
			require.NoError(t, err)
			defer release()

			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
}

func TestGuardDistinctUsersDoNotContend(t *testing.T) {
	guard := NewGuard()
	ctx := context.Background()

	releaseA, err := guard.Acquire(ctx, 1)
	require.NoError(t, err)
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := guard.Acquire(ctx, 2)
		require.NoError(t, err)
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire on a different user blocked")
	}
}

func TestGuardAcquireRespectsContext(t *testing.T) {
	guard := NewGuard()

	release, err := guard.Acquire(context.Background(), 7)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = guard.Acquire(ctx, 7)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuardReleaseIsIdempotent(t *testing.T) {
	guard := NewGuard()
	ctx := context.Background()

	release, err := guard.Acquire(ctx, 9)
	require.NoError(t, err)
	release()
	release() // second call must not unlock someone else's hold

	release2, err := guard.Acquire(ctx, 9)
	require.NoError(t, err)
	defer release2()
}

func TestGuardAcquirePairAvoidsDeadlock(t *testing.T) {
	guard := NewGuard()
	ctx := context.Background()

	// opposing transfers between the same two users, many times over
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release, err := guard.AcquirePair(ctx, 1, 2)
			require.NoError(t, err)
			release()
		}()
		go func() {
			defer wg.Done()
			release, err := guard.AcquirePair(ctx, 2, 1)
			require.NoError(t, err)
			release()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pair acquisition deadlocked")
	}
}

func TestGuardAcquirePairSameUser(t *testing.T) {
	guard := NewGuard()

	release, err := guard.AcquirePair(context.Background(), 3, 3)
	require.NoError(t, err)
	release()
}
