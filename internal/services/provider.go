package services

import (
	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	"github.com/KirkDiggler/dungeon-saves/internal/events"
	characterRepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	savesrepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
	"github.com/KirkDiggler/dungeon-saves/internal/services/character"
	"github.com/KirkDiggler/dungeon-saves/internal/services/gameplay"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
	"github.com/KirkDiggler/dungeon-saves/internal/services/saves"
)

// Provider holds all service instances
type Provider struct {
	RewardService    reward.Service
	GameplayService  gameplay.Service
	CharacterService character.Service
	SaveService      saves.Service
	EventBus         *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	SaveRepository      savesrepo.Repository     // Optional, defaults to in-memory
	CharacterRepository characterRepo.Repository // Optional, defaults to in-memory
	Authenticator       saves.Authenticator      // Required
	Roller              dice.Roller              // Optional, defaults to a random roller
	MaxMessages         int                      // Optional
	EventBus            *events.Bus              // Optional, a new bus is created when nil
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	repo := cfg.SaveRepository
	if repo == nil {
		repo = savesrepo.NewInMemoryRepository(nil)
	}
	characters := cfg.CharacterRepository
	if characters == nil {
		characters = characterRepo.NewInMemoryRepository(nil)
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	rewardService := reward.NewService(&reward.ServiceConfig{
		Roller: roller,
	})

	gameplayService := gameplay.NewService(&gameplay.ServiceConfig{
		RewardService: rewardService,
		Roller:        roller,
		MaxMessages:   cfg.MaxMessages,
		EventBus:      bus,
	})

	characterService := character.NewService(&character.ServiceConfig{
		Repository:     characters,
		SaveRepository: repo,
		Authenticator:  cfg.Authenticator,
		Roller:         roller,
	})

	saveService := saves.NewService(&saves.ServiceConfig{
		Repository:          repo,
		CharacterRepository: characters,
		Authenticator:       cfg.Authenticator,
	})

	return &Provider{
		RewardService:    rewardService,
		GameplayService:  gameplayService,
		CharacterService: characterService,
		SaveService:      saveService,
		EventBus:         bus,
	}
}
