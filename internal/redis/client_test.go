package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/redis"
)

func TestConnect_SingleNode(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.Connect(context.Background(), mr.Addr(), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.Connect(ctx, "127.0.0.1:1", nil, &redis.Options{DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	assert.True(t, errors.IsUnavailable(err))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClusterClient(nil, nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClusterClient([]string{"a:6379"}, &redis.Options{DB: 2})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewClusterClient(t *testing.T) {
	client, err := redis.NewClusterClient([]string{"a:7000", "b:7001"}, &redis.Options{UseTLS: true})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
