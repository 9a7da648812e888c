// Package saves gates save persistence behind sign-in and the save validator
package saves

//go:generate mockgen -destination=mock/mock_service.go -package=mocksaves -source=service.go

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	characterRepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	savesrepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
)

// Authenticator reports whether the caller holds a live sign-in
type Authenticator interface {
	IsAuthenticated() bool
}

// Service persists save snapshots for signed-in users
type Service interface {
	// Start creates the opening save for one of the user's stored characters,
	// replacing any existing one
	Start(ctx context.Context, userID, characterID string) (*savesrepo.SaveRecord, error)

	// Load returns nil, nil when the user has no save for the character
	Load(ctx context.Context, userID, characterID string) (*savesrepo.SaveRecord, error)

	// Store prepares and validates the snapshot, then updates or creates the record
	Store(ctx context.Context, userID string, state save.SaveState) (*savesrepo.SaveRecord, error)

	// Delete removes one of the user's saves
	Delete(ctx context.Context, userID, saveID string) error

	// List returns every save the user owns, oldest first
	List(ctx context.Context, userID string) ([]*savesrepo.SaveRecord, error)
}

type service struct {
	repository savesrepo.Repository
	characters characterRepo.Repository
	auth       Authenticator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository          savesrepo.Repository     // Required
	CharacterRepository characterRepo.Repository // Required, Start reads the character from it
	Authenticator       Authenticator            // Required
}

// NewService creates a new saves service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.Authenticator == nil {
		panic("authenticator is required")
	}

	return &service{
		repository: cfg.Repository,
		characters: cfg.CharacterRepository,
		auth:       cfg.Authenticator,
	}
}

// Start implements Service.Start
func (s *service) Start(ctx context.Context, userID, characterID string) (*savesrepo.SaveRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	stored, err := s.characters.Get(ctx, userID, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load character '%s'", characterID)
	}
	c := stored.Character

	state := save.NewDefault(c)
	if err := state.Check(); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetByCharacter(ctx, userID, c.ID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to look up save for character '%s'", c.ID)
	}
	if existing != nil {
		log.WithFields(log.Fields{
			"user_id":      userID,
			"character_id": c.ID,
			"save_id":      existing.ID,
		}).Info("Replacing existing save")
		if err := s.repository.Delete(ctx, userID, existing.ID); err != nil {
			return nil, dnderr.Wrapf(err, "failed to delete save '%s'", existing.ID)
		}
	}

	record := &savesrepo.SaveRecord{
		UserID:    userID,
		SaveState: state,
	}
	if err := s.repository.Create(ctx, record); err != nil {
		return nil, dnderr.Wrapf(err, "failed to create save for character '%s'", c.ID)
	}

	log.WithFields(log.Fields{
		"user_id":      userID,
		"character_id": c.ID,
		"save_id":      record.ID,
	}).Info("Started new dungeon run")

	return record, nil
}

// Load implements Service.Load
func (s *service) Load(ctx context.Context, userID, characterID string) (*savesrepo.SaveRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	record, err := s.repository.GetByCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load save for character '%s'", characterID)
	}
	return record, nil
}

// Store implements Service.Store
func (s *service) Store(ctx context.Context, userID string, state save.SaveState) (*savesrepo.SaveRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}

	prepared := state.Prepared()
	if err := prepared.Check(); err != nil {
		log.WithFields(log.Fields{
			"user_id":      userID,
			"character_id": prepared.CharacterID,
		}).WithError(err).Warn("Refusing to store invalid save")
		return nil, err
	}

	existing, err := s.repository.GetByCharacter(ctx, userID, prepared.CharacterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to look up save for character '%s'", prepared.CharacterID)
	}

	if existing == nil {
		record := &savesrepo.SaveRecord{UserID: userID, SaveState: prepared}
		if err := s.repository.Create(ctx, record); err != nil {
			return nil, dnderr.Wrapf(err, "failed to create save for character '%s'", prepared.CharacterID)
		}
		return record, nil
	}

	existing.SaveState = prepared
	if err := s.repository.Update(ctx, existing); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update save '%s'", existing.ID)
	}

	log.WithFields(log.Fields{
		"save_id": existing.ID,
		"floor":   prepared.CurrentFloor,
		"x":       prepared.PlayerX,
		"y":       prepared.PlayerY,
	}).Debug("Stored save")

	return existing, nil
}

// Delete implements Service.Delete
func (s *service) Delete(ctx context.Context, userID, saveID string) error {
	if err := s.authorize(userID); err != nil {
		return err
	}
	if saveID == "" {
		return dnderr.InvalidArgument("save ID is required")
	}

	if err := s.repository.Delete(ctx, userID, saveID); err != nil {
		return dnderr.Wrapf(err, "failed to delete save '%s'", saveID)
	}
	return nil
}

// List implements Service.List
func (s *service) List(ctx context.Context, userID string) ([]*savesrepo.SaveRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}

	records, err := s.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list saves for user '%s'", userID)
	}
	return records, nil
}

func (s *service) authorize(userID string) error {
	if !s.auth.IsAuthenticated() {
		return dnderr.Unauthenticated("sign in to access saves")
	}
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	return nil
}
