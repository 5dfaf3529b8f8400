// Package cache provides Valkey (Redis-compatible) client initialization
// and caching of rendered OpenGraph images.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyOptions configures the cache connection.
type ValkeyOptions struct {
	Addr     string
	Password string
	DB       int

	// Timeout bounds the dial and every command. Zero means two seconds.
	Timeout time.Duration
}

// ConnectValkey creates a Valkey client and verifies the connection with a
// ping. Image caching is best effort, so commands fail fast instead of
// holding up a render.
func ConnectValkey(ctx context.Context, opts ValkeyOptions) (*redis.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   1,
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", opts.Addr, err)
	}

	slog.Info("valkey connected", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}
