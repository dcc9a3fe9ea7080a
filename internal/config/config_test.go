package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dm-api/internal/config"
	"github.com/KirkDiggler/dm-api/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dm-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Server.Port)
	assert.Equal(t, ":50051", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Backend)
	assert.False(t, cfg.Storage.Redis.Required)
	assert.Equal(t, 24*time.Hour, cfg.Session.SnapshotTTL)
	assert.Equal(t, 4*time.Hour, cfg.Dice.SessionTTL)
	assert.Equal(t, "positional", cfg.Combat.TurnPointer)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 6000
storage:
  backend: redis
  redis:
    addr: cache:6379
    required: true
combat:
  turn_pointer: track_current
logging:
  level: debug
  format: json
`)

	t.Setenv("DMAPI_SESSION_SNAPSHOT_TTL", "2h")
	t.Setenv("DMAPI_SERVER_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 50051, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level=warn"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port, "env beats file when the flag is not set")
	assert.Equal(t, config.StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.True(t, cfg.Storage.Redis.Required)
	assert.Equal(t, 2*time.Hour, cfg.Session.SnapshotTTL)
	assert.Equal(t, "track_current", cfg.Combat.TurnPointer)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_RedisCluster(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: redis
  redis:
    addr: ""
    cluster_addrs: ["node-a:7000", "node-b:7001"]
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"node-a:7000", "node-b:7001"}, cfg.Storage.Redis.ClusterAddrs)

	path = writeConfig(t, `
storage:
  backend: redis
  redis:
    cluster_addrs: ["node-a:7000"]
    db: 3
`)
	_, err = config.Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be 0 in cluster mode")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 70000
storage:
  backend: postgres
combat:
  turn_pointer: sideways
logging:
  level: loud
`)

	_, err := config.Load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	for _, field := range []string{"server.port", "storage.backend", "combat.turn_pointer", "logging.level"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", config.LoggingConfig{Level: "debug"}.SlogLevel().String())
	assert.Equal(t, "INFO", config.LoggingConfig{Level: "bogus"}.SlogLevel().String())
	assert.Equal(t, "ERROR", config.LoggingConfig{Level: "error"}.SlogLevel().String())
}
