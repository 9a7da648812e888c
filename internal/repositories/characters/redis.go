package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator // Optional
	TimeProvider  TimeProvider   // Optional
}

// redisRepo implements the Repository interface using Redis. Characters do not
// expire: a save may outlive its TTL but the character it points at stays.
type redisRepo struct {
	client redis.UniversalClient
	config Config
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
		config: (&Config{UUIDGenerator: cfg.UUIDGenerator, TimeProvider: cfg.TimeProvider}).withDefaults(),
	}
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// userCharactersKey generates the Redis key for a user's character set
func (r *redisRepo) userCharactersKey(userID string) string {
	return fmt.Sprintf("user:%s:characters", userID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, record *CharacterRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = r.config.UUIDGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(record.ID)).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to check character existence")
	}
	if exists > 0 {
		return alreadyExists(record.ID)
	}

	now := r.config.TimeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	data, err := json.Marshal(record)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(record.ID), string(data), 0)
	pipe.SAdd(ctx, r.userCharactersKey(record.UserID), record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to create character")
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, userID, id string) (*CharacterRecord, error) {
	record, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != userID {
		return nil, notFound(id)
	}
	return record, nil
}

// ListByUser retrieves all characters for a specific user
func (r *redisRepo) ListByUser(ctx context.Context, userID string) ([]*CharacterRecord, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.userCharactersKey(userID)).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list user characters")
	}

	found := make([]*CharacterRecord, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := r.fetch(gctx, id)
			if err != nil {
				return dnderr.Wrapf(err, "failed to get character %s", id)
			}
			found[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*CharacterRecord, 0, len(found))
	for _, record := range found {
		if record != nil && record.UserID == userID {
			records = append(records, record)
		}
	}
	sortNewestFirst(records)

	return records, nil
}

// Update updates an existing character
func (r *redisRepo) Update(ctx context.Context, record *CharacterRecord) error {
	if err := validateForUpdate(record); err != nil {
		return err
	}

	existing, err := r.fetch(ctx, record.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != record.UserID {
		return notFound(record.ID)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.config.TimeProvider.Now()

	data, err := json.Marshal(record)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize character")
	}

	if err := r.client.Set(ctx, r.key(record.ID), string(data), 0).Err(); err != nil {
		return dnderr.Wrap(err, "failed to update character")
	}

	return nil
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.fetch(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return notFound(id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.userCharactersKey(userID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to delete character")
	}

	return nil
}

// fetch returns nil, nil when the character key is absent
func (r *redisRepo) fetch(ctx context.Context, id string) (*CharacterRecord, error) {
	if id == "" {
		return nil, nil
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, dnderr.Wrap(err, "failed to get character")
	}

	var record CharacterRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize character")
	}

	return &record, nil
}
