package characters

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of the character repository.
// Useful for testing and for runs that do not need to survive a restart.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*CharacterRecord
	config     Config
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(cfg *Config) Repository {
	return &InMemoryRepository{
		characters: make(map[string]*CharacterRecord),
		config:     cfg.withDefaults(),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, record *CharacterRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = r.config.UUIDGenerator.New()
	}
	if _, exists := r.characters[record.ID]; exists {
		return alreadyExists(record.ID)
	}

	now := r.config.TimeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.characters[record.ID] = record.Clone()

	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, userID, id string) (*CharacterRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.characters[id]
	if !exists || record.UserID != userID {
		return nil, notFound(id)
	}
	return record.Clone(), nil
}

// ListByUser retrieves all characters for a specific user
func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*CharacterRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*CharacterRecord
	for _, record := range r.characters {
		if record.UserID == userID {
			result = append(result, record.Clone())
		}
	}
	sortNewestFirst(result)

	return result, nil
}

// Update updates an existing character
func (r *InMemoryRepository) Update(ctx context.Context, record *CharacterRecord) error {
	if err := validateForUpdate(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[record.ID]
	if !exists || existing.UserID != record.UserID {
		return notFound(record.ID)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.config.TimeProvider.Now()
	r.characters[record.ID] = record.Clone()

	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[id]
	if !exists || existing.UserID != userID {
		return notFound(id)
	}

	delete(r.characters, id)
	return nil
}
