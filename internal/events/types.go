package events

import (
	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
)

// EventType represents the type of game event
type EventType string

const (
	EventTypeEnemyEncountered EventType = "enemy_encountered"
	EventTypeBattleWon        EventType = "battle_won"
	EventTypeLevelUp          EventType = "level_up"
	EventTypeDoorOpened       EventType = "door_opened"
	EventTypeChestOpened      EventType = "chest_opened"
	EventTypeFloorChanged     EventType = "floor_changed"
	EventTypeDungeonCompleted EventType = "dungeon_completed"
)

// Event is the base interface for all game events
type Event interface {
	GetType() EventType
	GetActor() *character.Character
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Actor     *character.Character
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType             { return e.Type }
func (e *BaseEvent) GetActor() *character.Character { return e.Actor }
func (e *BaseEvent) IsCancelled() bool              { return e.Cancelled }
func (e *BaseEvent) Cancel()                        { e.Cancelled = true }

// EnemyEncounteredEvent fires when the player steps onto an enemy cell
type EnemyEncounteredEvent struct {
	BaseEvent
	Enemy reward.EnemyTemplate
	Floor int
	X, Y  int
}

// BattleWonEvent fires after rewards are paid out
type BattleWonEvent struct {
	BaseEvent
	Enemy   reward.EnemyTemplate
	Rewards reward.Rewards
}

// LevelUpEvent fires once per level gained
type LevelUpEvent struct {
	BaseEvent
	Level int
	Gains character.LevelUpGains
}

// DoorOpenedEvent fires when a door is opened
type DoorOpenedEvent struct {
	BaseEvent
	Floor   int
	X, Y    int
	UsedKey bool
}

// ChestOpenedEvent fires when a chest is opened
type ChestOpenedEvent struct {
	BaseEvent
	Floor    int
	X, Y     int
	Treasure reward.Treasure
}

// FloorChangedEvent fires when the player takes the stairs
type FloorChangedEvent struct {
	BaseEvent
	From, To int
}

// DungeonCompletedEvent fires when the player reaches the goal
type DungeonCompletedEvent struct {
	BaseEvent
	Floor int
}
