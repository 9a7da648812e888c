// Package characters persists the characters a user plays the dungeon with
package characters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcharacters -source=repository.go

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

// CharacterRecord is a stored character. The character fields are flattened into
// the record when encoded.
type CharacterRecord struct {
	character.Character
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a copy of the record
func (r *CharacterRecord) Clone() *CharacterRecord {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

// Repository defines the interface for character persistence. Every lookup is
// scoped to the owning user; another user's character reads as not found.
type Repository interface {
	// Create stores a new character, assigning its ID when empty and its timestamps
	Create(ctx context.Context, record *CharacterRecord) error

	// Get retrieves a character the user owns
	Get(ctx context.Context, userID, id string) (*CharacterRecord, error)

	// ListByUser returns the user's characters, newest first
	ListByUser(ctx context.Context, userID string) ([]*CharacterRecord, error)

	// Update replaces an existing character owned by record.UserID
	Update(ctx context.Context, record *CharacterRecord) error

	// Delete removes a character the user owns
	Delete(ctx context.Context, userID, id string) error
}

// TimeProvider stamps records
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock in UTC
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Config holds the collaborators shared by every implementation
type Config struct {
	UUIDGenerator uuid.Generator // Optional
	TimeProvider  TimeProvider   // Optional
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.UUIDGenerator == nil {
		out.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if out.TimeProvider == nil {
		out.TimeProvider = RealTimeProvider{}
	}
	return out
}

func validateForWrite(record *CharacterRecord) error {
	if record == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if record.UserID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	return nil
}

func validateForUpdate(record *CharacterRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}
	if record.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	return nil
}

func notFound(id string) error {
	return dnderr.NotFoundf("character with ID '%s' not found", id).
		WithMeta("character_id", id)
}

func alreadyExists(id string) error {
	return dnderr.AlreadyExistsf("character with ID '%s' already exists", id).
		WithMeta("character_id", id)
}

// sortNewestFirst orders records by creation time descending, then by ID
func sortNewestFirst(records []*CharacterRecord) {
	slices.SortFunc(records, func(a, b *CharacterRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
