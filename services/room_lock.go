package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoomLocker serialises bookings of one room across processes.
type RoomLocker interface {
	// Lock returns a release func, or ErrRoomLocked when another holder owns the room.
	Lock(ctx context.Context, roomID uint) (func(), error)
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, uint) (func(), error) { return func() {}, nil }

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisRoomLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoomLocker(rdb *redis.Client, ttl time.Duration) *RedisRoomLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisRoomLocker{rdb: rdb, ttl: ttl}
}

func (l *RedisRoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	key := fmt.Sprintf("lock:room:%d", roomID)
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("room lock: %w", err)
	}
	if !ok {
		return nil, ErrRoomLocked
	}
	return func() {
		_ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	}, nil
}
