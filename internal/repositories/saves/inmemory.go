package saves

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

// inMemoryRepository implements Repository with maps guarded by a RWMutex. Records
// are copied on the way in and out so callers never share state with the store.
type inMemoryRepository struct {
	mu          sync.RWMutex
	records     map[string]*SaveRecord
	byCharacter map[string]string

	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewInMemoryRepository creates a new in-memory save repository
func NewInMemoryRepository(cfg *Config) Repository {
	c := cfg.withDefaults()
	return &inMemoryRepository{
		records:       make(map[string]*SaveRecord),
		byCharacter:   make(map[string]string),
		uuidGenerator: c.UUIDGenerator,
		timeProvider:  c.TimeProvider,
	}
}

// Create implements Repository.Create
func (r *inMemoryRepository) Create(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	index := characterIndex(record.UserID, record.CharacterID)
	if _, exists := r.byCharacter[index]; exists {
		return alreadyExists(record.UserID, record.CharacterID)
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	if _, exists := r.records[record.ID]; exists {
		return alreadyExists(record.UserID, record.CharacterID)
	}
	now := r.timeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.records[record.ID] = record.Clone()
	r.byCharacter[index] = record.ID

	return nil
}

// Get implements Repository.Get
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*SaveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, notFound(id)
	}
	return record.Clone(), nil
}

// GetByCharacter implements Repository.GetByCharacter
func (r *inMemoryRepository) GetByCharacter(ctx context.Context, userID, characterID string) (*SaveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byCharacter[characterIndex(userID, characterID)]
	if !exists {
		return nil, nil
	}
	return r.records[id].Clone(), nil
}

// Update implements Repository.Update
func (r *inMemoryRepository) Update(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[record.ID]
	if !exists || existing.UserID != record.UserID {
		return notFound(record.ID)
	}

	index := characterIndex(record.UserID, record.CharacterID)
	if other, taken := r.byCharacter[index]; taken && other != record.ID {
		return alreadyExists(record.UserID, record.CharacterID)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.timeProvider.Now()

	delete(r.byCharacter, characterIndex(existing.UserID, existing.CharacterID))
	r.records[record.ID] = record.Clone()
	r.byCharacter[index] = record.ID

	return nil
}

// Delete implements Repository.Delete
func (r *inMemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[id]
	if !exists || existing.UserID != userID {
		return notFound(id)
	}

	delete(r.records, id)
	delete(r.byCharacter, characterIndex(existing.UserID, existing.CharacterID))

	return nil
}

// ListByUser implements Repository.ListByUser
func (r *inMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*SaveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*SaveRecord
	for _, record := range r.records {
		if record.UserID == userID {
			records = append(records, record.Clone())
		}
	}
	sortRecords(records)

	return records, nil
}

// sortRecords orders records oldest first, then by ID
func sortRecords(records []*SaveRecord) {
	slices.SortFunc(records, func(a, b *SaveRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
