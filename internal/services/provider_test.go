package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/dungeon-saves/internal/dice/mock"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-saves/internal/events"
	"github.com/KirkDiggler/dungeon-saves/internal/services"
	"github.com/KirkDiggler/dungeon-saves/internal/services/character"
	mocksaves "github.com/KirkDiggler/dungeon-saves/internal/services/saves/mock"
)

func TestNewProvider_WiresServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	authenticator := mocksaves.NewMockAuthenticator(ctrl)
	authenticator.EXPECT().IsAuthenticated().Return(true).AnyTimes()

	roller := mockdice.NewManualMockRoller()
	// hp, attack, defense, then slime, exp, gold
	roller.SetRolls([]int{11, 3, 3, 1, 1, 1})

	provider := services.NewProvider(&services.ProviderConfig{
		Authenticator: authenticator,
		Roller:        roller,
		MaxMessages:   4,
	})
	require.NotNil(t, provider.RewardService)
	require.NotNil(t, provider.GameplayService)
	require.NotNil(t, provider.CharacterService)
	require.NotNil(t, provider.SaveService)
	require.NotNil(t, provider.EventBus)

	var encounters int
	provider.EventBus.Subscribe(events.EventTypeEnemyEncountered, events.NewListener("count", 100, func(events.Event) error {
		encounters++
		return nil
	}))

	ctx := context.Background()
	hero, err := provider.CharacterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		UserID: "user-1",
		Name:   "アレン",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, hero.MaxHP)

	record, err := provider.SaveService.Start(ctx, "user-1", hero.ID)
	require.NoError(t, err)
	assert.Equal(t, hero.Character, *record.Character)

	moved, err := provider.GameplayService.Move(record.SaveState.WithPlayerPosition(1, 3, 5), dungeon.Right)
	require.NoError(t, err)
	require.NotNil(t, moved.Encounter)
	assert.Equal(t, "スライム", moved.Encounter.Name)
	assert.Equal(t, 1, encounters)

	battle, err := provider.GameplayService.WinBattle(moved.State, *moved.Encounter)
	require.NoError(t, err)

	stored, err := provider.SaveService.Store(ctx, "user-1", battle.State)
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)

	loaded, err := provider.SaveService.Load(ctx, "user-1", hero.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Character.Exp)
	assert.Equal(t, 3, loaded.Character.Gold)
	assert.Equal(t, dungeon.Key(1, 4, 5), loaded.Position())
	assert.Len(t, loaded.Messages, 3)
}

func TestNewProvider_KeepsGivenBus(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := events.NewBus()

	provider := services.NewProvider(&services.ProviderConfig{
		Authenticator: mocksaves.NewMockAuthenticator(ctrl),
		EventBus:      bus,
	})
	assert.Same(t, bus, provider.EventBus)
}

func TestNewProvider_RequiresAuthenticator(t *testing.T) {
	assert.Panics(t, func() {
		services.NewProvider(&services.ProviderConfig{})
	})
}
