package save

import (
	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
)

// Count is a convenience for the optional arguments of WithItems
func Count(v int) *int {
	return &v
}

// WithDoorState records a door as open (true) or closed
func (s SaveState) WithDoorState(floor, x, y int, isOpen bool) SaveState {
	out := s.Clone()
	if out.DoorStates == nil {
		out.DoorStates = map[dungeon.PositionKey]bool{}
	}
	out.DoorStates[dungeon.Key(floor, x, y)] = isOpen
	return out
}

// WithChestState records a chest as opened (true) or not
func (s SaveState) WithChestState(floor, x, y int, isOpened bool) SaveState {
	out := s.Clone()
	if out.ChestStates == nil {
		out.ChestStates = map[dungeon.PositionKey]bool{}
	}
	out.ChestStates[dungeon.Key(floor, x, y)] = isOpened
	return out
}

// WithPlayerPosition moves the player and remembers the position for that floor.
// It does not check legality; callers gate ordinary moves with dungeon.CanMoveTo.
func (s SaveState) WithPlayerPosition(floor, x, y int) SaveState {
	out := s.Clone()
	out.CurrentFloor = floor
	out.PlayerX = x
	out.PlayerY = y
	if out.PlayerPositions == nil {
		out.PlayerPositions = map[int]Point{}
	}
	out.PlayerPositions[floor] = Point{X: x, Y: y}
	return out
}

// WithItems sets potions and keys, clamping at zero. A nil argument leaves that
// count unchanged.
func (s SaveState) WithItems(potions, keys *int) SaveState {
	out := s.Clone()
	if potions != nil {
		out.Potions = max(0, *potions)
	}
	if keys != nil {
		out.Keys = max(0, *keys)
	}
	return out
}

// WithMessage appends to the log and keeps only the newest maxMessages entries.
// maxMessages <= 0 means DefaultMaxMessages.
func (s SaveState) WithMessage(message string, maxMessages int) SaveState {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}

	out := s.Clone()
	out.Messages = append(out.Messages, message)
	if len(out.Messages) > maxMessages {
		out.Messages = append([]string(nil), out.Messages[len(out.Messages)-maxMessages:]...)
	}
	return out
}

// WithCharacter replaces the embedded character
func (s SaveState) WithCharacter(c character.Character) SaveState {
	out := s.Clone()
	out.Character = &c
	out.CharacterID = c.ID
	return out
}
