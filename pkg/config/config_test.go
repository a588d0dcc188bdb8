package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "", cfg.Redis.Address)
	assert.False(t, cfg.Ledger.StrictRakeScope)
	assert.Equal(t, 30*time.Second, cfg.Ledger.LockTTL)
	assert.Equal(t, 1001, cfg.Ledger.LRNumberStart)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LEDGER_STRICT_RAKE_SCOPE", "true")
	t.Setenv("LOCK_WAIT_SECONDS", "3")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Ledger.StrictRakeScope)
	assert.Equal(t, 3*time.Second, cfg.Ledger.LockWait)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "fims", Password: "p@ss:w/rd", DBName: "fims", SSLMode: "disable"}
	assert.Equal(t, "postgres://fims:p%40ss%3Aw%2Frd@db:5432/fims?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}
