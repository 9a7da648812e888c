// Package saves persists save records: one per user and character
package saves

//go:generate mockgen -destination=mock/mock_repository.go -package=mocksaves -source=repository.go

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

// SaveRecord is a persisted snapshot. The snapshot fields are flattened into the
// record when encoded.
type SaveRecord struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	save.SaveState
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the record
func (r *SaveRecord) Clone() *SaveRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.SaveState = r.SaveState.Clone()
	return &out
}

// Repository defines the interface for save storage operations. Implementations are
// safe for concurrent use; the last write wins.
type Repository interface {
	// Create stores a new record, assigning its ID and timestamps. A user holds at
	// most one record per character.
	Create(ctx context.Context, record *SaveRecord) error

	// Get returns a record by ID
	Get(ctx context.Context, id string) (*SaveRecord, error)

	// GetByCharacter returns nil, nil when the user has no save for the character
	GetByCharacter(ctx context.Context, userID, characterID string) (*SaveRecord, error)

	// Update replaces the snapshot of an existing record owned by record.UserID
	Update(ctx context.Context, record *SaveRecord) error

	// Delete removes a record owned by the user
	Delete(ctx context.Context, userID, id string) error

	// ListByUser returns every record the user owns, oldest first
	ListByUser(ctx context.Context, userID string) ([]*SaveRecord, error)
}

// Config holds the collaborators shared by every implementation
type Config struct {
	UUIDGenerator uuid.Generator // Optional
	TimeProvider  TimeProvider   // Optional
}

func validateForWrite(record *SaveRecord) error {
	if record == nil {
		return dnderr.InvalidArgument("save record cannot be nil")
	}
	if record.UserID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	if record.CharacterID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	return nil
}

func notFound(id string) error {
	return dnderr.NotFoundf("save '%s' not found", id).
		WithMeta("save_id", id)
}

func alreadyExists(userID, characterID string) error {
	return dnderr.AlreadyExistsf("user '%s' already has a save for character '%s'", userID, characterID).
		WithMeta("user_id", userID).
		WithMeta("character_id", characterID)
}

func characterIndex(userID, characterID string) string {
	return fmt.Sprintf("%s/%s", userID, characterID)
}
