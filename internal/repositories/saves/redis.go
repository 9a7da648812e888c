package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	saveKeyPrefix    = "save:"
	characterSaveKey = "user:%s:character:%s:save"
	userSavesKey     = "user:%s:saves"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator // Optional
	TimeProvider  TimeProvider   // Optional
	TTL           time.Duration  // Optional, zero keeps saves forever
}

// redisRepository implements Repository using Redis: the record JSON lives under
// save:<id>, the (user, character) index points at the id, and a per-user set
// lists every id the user owns.
type redisRepository struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	ttl           time.Duration
}

// NewRedisRepository creates a new Redis-backed save repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("redis client is required")
	}

	defaults := (&Config{UUIDGenerator: cfg.UUIDGenerator, TimeProvider: cfg.TimeProvider}).withDefaults()

	return &redisRepository{
		client:        cfg.Client,
		uuidGenerator: defaults.UUIDGenerator,
		timeProvider:  defaults.TimeProvider,
		ttl:           cfg.TTL,
	}
}

func (r *redisRepository) saveKey(id string) string {
	return saveKeyPrefix + id
}

func (r *redisRepository) characterKey(userID, characterID string) string {
	return fmt.Sprintf(characterSaveKey, userID, characterID)
}

func (r *redisRepository) userKey(userID string) string {
	return fmt.Sprintf(userSavesKey, userID)
}

// Create implements Repository.Create
func (r *redisRepository) Create(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	indexKey := r.characterKey(record.UserID, record.CharacterID)
	exists, err := r.client.Exists(ctx, indexKey).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to check save existence")
	}
	if exists > 0 {
		return alreadyExists(record.UserID, record.CharacterID)
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	now := r.timeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	data, err := json.Marshal(record)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize save")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.saveKey(record.ID), string(data), r.ttl)
	pipe.Set(ctx, indexKey, record.ID, r.ttl)
	pipe.SAdd(ctx, r.userKey(record.UserID), record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to create save")
	}

	return nil
}

// Get implements Repository.Get
func (r *redisRepository) Get(ctx context.Context, id string) (*SaveRecord, error) {
	record, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFound(id)
	}
	return record, nil
}

// GetByCharacter implements Repository.GetByCharacter
func (r *redisRepository) GetByCharacter(ctx context.Context, userID, characterID string) (*SaveRecord, error) {
	id, err := r.client.Get(ctx, r.characterKey(userID, characterID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, dnderr.Wrap(err, "failed to look up save")
	}

	// A dangling index (the record expired first) reads as no save
	return r.fetch(ctx, id)
}

// Update implements Repository.Update
func (r *redisRepository) Update(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	existing, err := r.fetch(ctx, record.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != record.UserID {
		return notFound(record.ID)
	}

	indexKey := r.characterKey(record.UserID, record.CharacterID)
	if existing.CharacterID != record.CharacterID {
		other, err := r.client.Get(ctx, indexKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return dnderr.Wrap(err, "failed to look up save")
		}
		if err == nil && other != record.ID {
			return alreadyExists(record.UserID, record.CharacterID)
		}
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.timeProvider.Now()

	data, err := json.Marshal(record)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize save")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.saveKey(record.ID), string(data), r.ttl)
	if existing.CharacterID != record.CharacterID {
		pipe.Del(ctx, r.characterKey(existing.UserID, existing.CharacterID))
	}
	pipe.Set(ctx, indexKey, record.ID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to update save")
	}

	return nil
}

// Delete implements Repository.Delete
func (r *redisRepository) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.fetch(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return notFound(id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.saveKey(id))
	pipe.Del(ctx, r.characterKey(existing.UserID, existing.CharacterID))
	pipe.SRem(ctx, r.userKey(existing.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to delete save")
	}

	return nil
}

// ListByUser implements Repository.ListByUser
func (r *redisRepository) ListByUser(ctx context.Context, userID string) ([]*SaveRecord, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list user saves")
	}

	found := make([]*SaveRecord, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := r.fetch(gctx, id)
			if err != nil {
				return dnderr.Wrapf(err, "failed to get save %s", id)
			}
			found[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*SaveRecord, 0, len(found))
	for _, record := range found {
		if record != nil {
			records = append(records, record)
		}
	}
	sortRecords(records)

	return records, nil
}

// fetch returns nil, nil when the record key is absent
func (r *redisRepository) fetch(ctx context.Context, id string) (*SaveRecord, error) {
	if id == "" {
		return nil, nil
	}

	data, err := r.client.Get(ctx, r.saveKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, dnderr.Wrap(err, "failed to get save")
	}

	var record SaveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize save")
	}
	record.SaveState = record.SaveState.Prepared()

	return &record, nil
}
