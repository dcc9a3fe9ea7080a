// Package testutils provides shared test helpers for redis and gRPC
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dm-api/internal/redis"
)

// CreateTestRedisClient starts a miniredis server for the test and returns a
// client for it along with the server, so tests can inspect keys or fast-forward
// TTLs. Both are closed when the test finishes.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
