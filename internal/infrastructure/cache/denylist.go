package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// Denylist remembers revoked token ids until the token would have expired anyway.
type Denylist struct{ rdb *redis.Client }

func NewDenylist(rdb *redis.Client) *Denylist { return &Denylist{rdb: rdb} }

func (d *Denylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired; nothing to revoke
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

func (d *Denylist) IsDenied(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, denylistPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
