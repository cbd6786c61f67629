package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/biblio2ie/biblio/core/session"
)

// Redis persists snapshots as string values. A positive ttl expires
// untouched snapshots; every save refreshes it.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis creates a Redis persister. ttl <= 0 keeps keys forever.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Snapshot{}, false, nil
	}
	if err != nil {
		return session.Snapshot{}, false, err
	}
	snap, err := decode(raw)
	if err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (r *Redis) Save(ctx context.Context, key string, snap session.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}
