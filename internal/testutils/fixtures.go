package testutils

import (
	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
)

// CreateTestCharacter creates a level 1 character with the default stats
func CreateTestCharacter(id, name string) character.Character {
	return character.Character{
		ID:        id,
		Name:      name,
		Level:     1,
		ExpToNext: character.DefaultExpToNext,
		HP:        character.DefaultHP,
		MaxHP:     character.DefaultHP,
		Attack:    character.DefaultAttack,
		Defense:   character.DefaultDefense,
	}
}

// CreateTestSave creates a fresh run for a test character
func CreateTestSave(characterID, name string) save.SaveState {
	return save.NewDefault(CreateTestCharacter(characterID, name))
}
