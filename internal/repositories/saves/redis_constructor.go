package saves

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

// NewRedis creates a new Redis-backed save repository with default collaborators.
// A zero ttl keeps saves forever.
func NewRedis(client redis.UniversalClient, ttl time.Duration) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		TimeProvider:  &RealTimeProvider{},
		TTL:           ttl,
	})
}
