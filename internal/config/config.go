// Package config loads dm-api server settings from defaults, an optional
// YAML file, DMAPI_ environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
)

// EnvPrefix namespaces environment overrides, e.g. DMAPI_SERVER_PORT
const EnvPrefix = "DMAPI"

// Storage backends for session snapshots and dice logs
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// ServerConfig controls the gRPC listener
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects where snapshots and roll logs live
type StorageConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig is used when the storage backend is redis.
// ClusterAddrs takes precedence over Addr when set. Unless Required is set, a
// server that cannot reach redis at startup falls back to in-memory storage.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	ClusterAddrs []string      `mapstructure:"cluster_addrs"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	UseTLS       bool          `mapstructure:"use_tls"`
	Required     bool          `mapstructure:"required"`
}

// SessionConfig controls session snapshots
type SessionConfig struct {
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// CombatConfig controls combat defaults
type CombatConfig struct {
	TurnPointer string `mapstructure:"turn_pointer"`
}

// DiceConfig controls dice roll logs
type DiceConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Dice    DiceConfig    `mapstructure:"dice"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"port":         "server.port",
	"storage":      "storage.backend",
	"redis-addr":   "storage.redis.addr",
	"turn-pointer": "combat.turn_pointer",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	if c.Server.ShutdownTimeout <= 0 {
		vb.Field("server.shutdown_timeout", "must be positive")
	}

	errors.ValidateEnum("storage.backend", c.Storage.Backend, []string{StorageMemory, StorageRedis}, vb)
	if c.Storage.Backend == StorageRedis {
		rc := c.Storage.Redis
		if len(rc.ClusterAddrs) == 0 {
			errors.ValidateRequired("storage.redis.addr", rc.Addr, vb)
		} else if rc.DB != 0 {
			vb.Field("storage.redis.db", "must be 0 in cluster mode")
		}
		if rc.DB < 0 {
			vb.Field("storage.redis.db", "must not be negative")
		}
	}

	if c.Session.SnapshotTTL <= 0 {
		vb.Field("session.snapshot_ttl", "must be positive")
	}
	if c.Dice.SessionTTL <= 0 {
		vb.Field("dice.session_ttl", "must be positive")
	}

	if !engine.TurnPointer(c.Combat.TurnPointer).IsValid() {
		vb.InvalidField("combat.turn_pointer", c.Combat.TurnPointer)
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"text", "json"}, vb)

	return vb.Build()
}

// SlogLevel converts the configured level name
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address for the gRPC server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load reads the configuration. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.pool_size", 10)
	v.SetDefault("storage.redis.dial_timeout", "5s")
	v.SetDefault("storage.redis.use_tls", false)
	v.SetDefault("storage.redis.required", false)

	v.SetDefault("session.snapshot_ttl", "24h")
	v.SetDefault("dice.session_ttl", "4h")
	v.SetDefault("combat.turn_pointer", string(engine.TurnPointerPositional))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
