// Package character manages the characters a signed-in user can take into the dungeon
package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	chardomain "github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	characterRepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	savesrepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
)

// Repository is an alias for the character repository interface
type Repository = characterRepo.Repository

// Authenticator reports whether the caller holds a live sign-in
type Authenticator interface {
	IsAuthenticated() bool
}

// Service defines the character service interface
type Service interface {
	// CreateCharacter stores a new character for the user
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*characterRepo.CharacterRecord, error)

	// GetCharacter retrieves one of the user's characters
	GetCharacter(ctx context.Context, userID, characterID string) (*characterRepo.CharacterRecord, error)

	// ListCharacters lists all characters for a user, newest first
	ListCharacters(ctx context.Context, userID string) ([]*characterRepo.CharacterRecord, error)

	// UpdateCharacter replaces the stats of an existing character. ID and owner never change.
	UpdateCharacter(ctx context.Context, userID string, c chardomain.Character) (*characterRepo.CharacterRecord, error)

	// DeleteCharacter removes a character together with its save
	DeleteCharacter(ctx context.Context, userID, characterID string) error
}

// CreateCharacterInput contains all data needed to create a character
type CreateCharacterInput struct {
	UserID string
	Name   string
	Stats  *chardomain.Character // Optional, starting stats are rolled when nil
}

type service struct {
	repository     Repository
	saveRepository savesrepo.Repository
	auth           Authenticator
	roller         dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository     Repository           // Required
	Authenticator  Authenticator        // Required
	SaveRepository savesrepo.Repository // Optional, deleting a character also drops its save
	Roller         dice.Roller          // Optional, rolls starting stats
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Authenticator == nil {
		panic("authenticator is required")
	}

	svc := &service{
		repository:     cfg.Repository,
		saveRepository: cfg.SaveRepository,
		auth:           cfg.Authenticator,
		roller:         cfg.Roller,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// CreateCharacter implements Service.CreateCharacter
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*characterRepo.CharacterRecord, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if err := s.authorize(input.UserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, dnderr.Validation("character name is required").
			WithMeta("operation", "CreateCharacter")
	}

	var stats chardomain.Character
	if input.Stats == nil {
		rolled, err := chardomain.RandomStats(s.roller)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll starting stats")
		}
		stats = rolled
	} else {
		stats = input.Stats.Clean()
	}
	stats.ID = ""
	stats.UserID = input.UserID
	stats.Name = name

	if err := validationError(stats.Validate()); err != nil {
		return nil, err
	}

	record := &characterRepo.CharacterRecord{Character: stats}
	if err := s.repository.Create(ctx, record); err != nil {
		return nil, dnderr.Wrapf(err, "failed to create character '%s'", name)
	}

	log.WithFields(log.Fields{
		"user_id":      input.UserID,
		"character_id": record.ID,
		"name":         name,
	}).Info("Created character")

	return record, nil
}

// GetCharacter implements Service.GetCharacter
func (s *service) GetCharacter(ctx context.Context, userID, characterID string) (*characterRepo.CharacterRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	record, err := s.repository.Get(ctx, userID, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get character '%s'", characterID)
	}
	return record, nil
}

// ListCharacters implements Service.ListCharacters
func (s *service) ListCharacters(ctx context.Context, userID string) ([]*characterRepo.CharacterRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}

	records, err := s.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list characters for user '%s'", userID)
	}
	return records, nil
}

// UpdateCharacter implements Service.UpdateCharacter
func (s *service) UpdateCharacter(ctx context.Context, userID string, c chardomain.Character) (*characterRepo.CharacterRecord, error) {
	if err := s.authorize(userID); err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	c.UserID = userID
	c.Name = strings.TrimSpace(c.Name)
	if err := validationError(c.Validate()); err != nil {
		return nil, err
	}

	record := &characterRepo.CharacterRecord{Character: c}
	if err := s.repository.Update(ctx, record); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update character '%s'", c.ID)
	}

	return record, nil
}

// DeleteCharacter implements Service.DeleteCharacter
func (s *service) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	if err := s.authorize(userID); err != nil {
		return err
	}
	if characterID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	if err := s.repository.Delete(ctx, userID, characterID); err != nil {
		return dnderr.Wrapf(err, "failed to delete character '%s'", characterID)
	}

	if s.saveRepository != nil {
		s.dropSave(ctx, userID, characterID)
	}

	return nil
}

// dropSave removes the character's save. The character is already gone, so a
// failure here is only logged.
func (s *service) dropSave(ctx context.Context, userID, characterID string) {
	logger := log.WithFields(log.Fields{
		"user_id":      userID,
		"character_id": characterID,
	})

	record, err := s.saveRepository.GetByCharacter(ctx, userID, characterID)
	if err != nil {
		logger.WithError(err).Warn("Failed to look up save of deleted character")
		return
	}
	if record == nil {
		return
	}
	if err := s.saveRepository.Delete(ctx, userID, record.ID); err != nil {
		logger.WithError(err).WithField("save_id", record.ID).Warn("Failed to delete save of deleted character")
		return
	}
	logger.WithField("save_id", record.ID).Info("Deleted save of deleted character")
}

func (s *service) authorize(userID string) error {
	if !s.auth.IsAuthenticated() {
		return dnderr.Unauthenticated("sign in to manage characters")
	}
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	return nil
}

func validationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return dnderr.Validationf("character is invalid: %s", strings.Join(problems, "; ")).
		WithMeta("problems", problems)
}
