package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/dm-api/internal/config"
	sessionv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/session/v1alpha1"
	"github.com/KirkDiggler/dm-api/internal/testutils"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	return cfg
}

func TestNewApp_Memory(t *testing.T) {
	a, err := newApp(context.Background(), loadConfig(t))
	require.NoError(t, err)
	assert.Nil(t, a.redis)
	assert.NoError(t, a.close())
}

func TestNewApp_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := loadConfig(t)
	cfg.Storage.Backend = config.StorageRedis
	cfg.Storage.Redis.Addr = mr.Addr()

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.redis)
	t.Cleanup(func() { _ = a.close() })

	conn := testutils.StartBufconnServer(t, func(srv *grpc.Server) {
		_, err := a.register(srv)
		require.NoError(t, err)
	})

	created, err := sessionv1alpha1.NewClient(conn).CreateSession(context.Background(), &sessionv1alpha1.CreateSessionRequest{Name: "Redis table"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("game_session:"+created.Session.ID))
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := loadConfig(t)
	cfg.Storage.Backend = config.StorageRedis
	cfg.Storage.Redis.Addr = addr
	cfg.Storage.Redis.DialTimeout = 200 * time.Millisecond

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, a.redis)

	conn := testutils.StartBufconnServer(t, func(srv *grpc.Server) {
		_, err := a.register(srv)
		require.NoError(t, err)
	})
	created, err := sessionv1alpha1.NewClient(conn).CreateSession(context.Background(), &sessionv1alpha1.CreateSessionRequest{Name: "Offline table"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Session.ID)

	cfg.Storage.Redis.Required = true
	_, err = newApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestRegister_HealthAndInterceptors(t *testing.T) {
	a, err := newApp(context.Background(), loadConfig(t))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, &logs)

	lisConn := testutils.StartBufconnServer(t, func(srv *grpc.Server) {
		_, err := a.register(srv)
		require.NoError(t, err)
	}, grpc.ChainUnaryInterceptor(newInterceptors(logger)...))

	resp, err := grpc_health_v1.NewHealthClient(lisConn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{
		Service: sessionv1alpha1.ServiceName,
	})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	assert.Contains(t, logs.String(), "grpc.health.v1.Health")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
