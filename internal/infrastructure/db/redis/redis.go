// Package redis backs the credential-delivery failure ledger. The portal
// only ever stores small, TTL-bounded flags here; losing the instance
// costs follow-up hints, never provisioning state.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Connect opens the client the delivery ledger runs on and verifies
// connectivity with a bounded ping, so a dead instance fails startup
// instead of the first flagged delivery.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
