package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/domain"
)

func TestLocal_ExclusionMismaClave(t *testing.T) {
	l := NewLocal(0)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "warehouse:w1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, l.size())
}

func TestLocal_ClavesDistintasNoSeBloquean(t *testing.T) {
	l := NewLocal(0)
	unlockA, err := l.Lock(context.Background(), "builty:a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "builty:b")
	require.NoError(t, err)
	unlockB()
}

func TestLocal_Timeout(t *testing.T) {
	l := NewLocal(20 * time.Millisecond)
	unlock, err := l.Lock(context.Background(), "invoice:d1")
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), "invoice:d1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	unlock()
	unlock() // idempotente
	assert.Zero(t, l.size())

	unlock2, err := l.Lock(context.Background(), "invoice:d1")
	require.NoError(t, err)
	unlock2()
}

func TestLocal_ContextoCancelado(t *testing.T) {
	l := NewLocal(0)
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}
