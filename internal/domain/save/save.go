// Package save is the persisted snapshot of one character's dungeon run and the pure
// transitions that produce new snapshots from old ones.
package save

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
)

const (
	DefaultFloor       = 1
	DefaultPlayerX     = 1
	DefaultPlayerY     = 6
	DefaultPotions     = 3
	DefaultKeys        = 0
	DefaultMaxMessages = 10
)

// Point is a position on a single floor
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SaveState is the save-record payload. Treat it as immutable: the With* methods
// return new snapshots and never touch the receiver's maps or slices.
type SaveState struct {
	Character       *character.Character         `json:"character"`
	CharacterID     string                       `json:"characterId"`
	CurrentFloor    int                          `json:"currentFloor"`
	PlayerX         int                          `json:"playerX"`
	PlayerY         int                          `json:"playerY"`
	Potions         int                          `json:"potions"`
	Keys            int                          `json:"keys"`
	DoorStates      map[dungeon.PositionKey]bool `json:"doorStates"`
	ChestStates     map[dungeon.PositionKey]bool `json:"chestStates"`
	PlayerPositions map[int]Point                `json:"playerPositions"`
	Messages        []string                     `json:"messages"`
}

// DefaultPlayerPositions is where each floor is entered for the first time
func DefaultPlayerPositions() map[int]Point {
	return map[int]Point{
		1: {X: 1, Y: 6},
		2: {X: 1, Y: 1},
		3: {X: 1, Y: 1},
	}
}

// Position returns the player's current cell key
func (s SaveState) Position() dungeon.PositionKey {
	return dungeon.Key(s.CurrentFloor, s.PlayerX, s.PlayerY)
}

// CurrentCell returns the static cell under the player
func (s SaveState) CurrentCell() (dungeon.CellType, error) {
	return dungeon.CellAt(s.CurrentFloor, s.PlayerX, s.PlayerY)
}

// DoorOpen reports the override state of the door at (x, y) on the current floor
func (s SaveState) DoorOpen(x, y int) bool {
	return s.DoorStates[dungeon.Key(s.CurrentFloor, x, y)]
}

// ChestOpened reports the override state of the chest at (x, y) on the current floor
func (s SaveState) ChestOpened(x, y int) bool {
	return s.ChestStates[dungeon.Key(s.CurrentFloor, x, y)]
}

// Clone returns a deep copy: every map, slice and the embedded character
func (s SaveState) Clone() SaveState {
	out := s
	if s.Character != nil {
		c := *s.Character
		out.Character = &c
	}
	out.DoorStates = maps.Clone(s.DoorStates)
	out.ChestStates = maps.Clone(s.ChestStates)
	out.PlayerPositions = maps.Clone(s.PlayerPositions)
	out.Messages = slices.Clone(s.Messages)
	return out
}
