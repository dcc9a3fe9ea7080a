// Package redis builds go-redis clients for the snapshot and dice session stores.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dm-api/internal/errors"
)

// Client is the redis surface the repositories depend on.
// Single-node and cluster clients both satisfy it.
type Client interface {
	redis.UniversalClient
}

type Options struct {
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	UseTLS       bool
}

func (o *Options) tlsConfig() *tls.Config {
	if !o.UseTLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// NewClient creates a client for a single instance.
// The connection is lazy; call Ping to check reachability.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:         endpoint,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
		TLSConfig:    opts.tlsConfig(),
	}), nil
}

// NewClusterClient creates a cluster client. Cluster mode has no DB index,
// so opts.DB must be 0.
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.InvalidArgument("at least one redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.DB != 0 {
		return nil, errors.InvalidArgumentf("redis cluster does not support db %d", opts.DB)
	}

	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:        endpoints,
		Password:     opts.Password,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
		TLSConfig:    opts.tlsConfig(),
	}), nil
}

// Connect builds a cluster client when clusterAddrs is set and a single-node
// client for addr otherwise, then pings it. The client is closed on failure.
func Connect(ctx context.Context, addr string, clusterAddrs []string, opts *Options) (Client, error) {
	var (
		client Client
		err    error
	)
	if len(clusterAddrs) > 0 {
		client, err = NewClusterClient(clusterAddrs, opts)
	} else {
		client, err = NewClient(addr, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping checks that the server answers within the context deadline
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}
	return nil
}
