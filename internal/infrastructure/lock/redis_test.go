package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/pkg/config"
)

// Requiere un Redis real: REDIS_TEST_ADDRESS=localhost:6379.
func TestRedis_ExclusionYTimeout(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS no definido")
	}
	ctx := context.Background()
	rdb, err := Connect(ctx, config.RedisConfig{Address: addr})
	require.NoError(t, err)
	defer rdb.Close()

	l := NewRedis(rdb, 5*time.Second, 100*time.Millisecond, nil)
	key := "test:" + t.Name()

	unlock, err := l.Lock(ctx, key)
	require.NoError(t, err)

	_, err = l.Lock(ctx, key)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	unlock()
	unlock2, err := l.Lock(ctx, key)
	require.NoError(t, err)
	unlock2()
}
