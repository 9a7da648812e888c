package save

import (
	"fmt"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
)

// EnteredMessage is the first line of every new run's log
func EnteredMessage(name string) string {
	return fmt.Sprintf("%sがダンジョンに入りました！", name)
}

// NewDefault builds the snapshot for a character entering the dungeon
func NewDefault(c character.Character) SaveState {
	return SaveState{
		Character:       &c,
		CharacterID:     c.ID,
		CurrentFloor:    DefaultFloor,
		PlayerX:         DefaultPlayerX,
		PlayerY:         DefaultPlayerY,
		Potions:         DefaultPotions,
		Keys:            DefaultKeys,
		DoorStates:      map[dungeon.PositionKey]bool{},
		ChestStates:     map[dungeon.PositionKey]bool{},
		PlayerPositions: DefaultPlayerPositions(),
		Messages:        []string{EnteredMessage(c.Name)},
	}
}

// ResetForNewDungeon starts a fresh attempt with the same character
func ResetForNewDungeon(c character.Character) SaveState {
	return NewDefault(c)
}
