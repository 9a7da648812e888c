package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/events"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
)

func TestEventBus_BattleWonReachesListener(t *testing.T) {
	bus := events.NewBus()

	hero := &character.Character{ID: "char-1", Name: "アレン", Level: 1}
	var got *events.BattleWonEvent
	bus.Subscribe(events.EventTypeBattleWon, events.NewListener("recorder", 100, func(e events.Event) error {
		got, _ = e.(*events.BattleWonEvent)
		return nil
	}))

	event := &events.BattleWonEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeBattleWon, Actor: hero},
		Enemy:     reward.Enemies()[0],
		Rewards:   reward.Rewards{Exp: 7, Gold: 4},
	}
	require.NoError(t, bus.Emit(event))

	require.NotNil(t, got)
	assert.Equal(t, "スライム", got.Enemy.Name)
	assert.Equal(t, 7, got.Rewards.Exp)
	assert.Same(t, hero, got.GetActor())
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string
	record := func(name string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, name)
			return nil
		}
	}

	// Subscribe in random order
	bus.Subscribe(events.EventTypeLevelUp, events.NewListener("low", 300, record("low")))
	bus.Subscribe(events.EventTypeLevelUp, events.NewListener("high", 100, record("high")))
	bus.Subscribe(events.EventTypeLevelUp, events.NewListener("medium", 200, record("medium")))

	err := bus.Emit(&events.LevelUpEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeLevelUp},
		Level:     2,
	})
	require.NoError(t, err)

	// Lower priority number runs earlier
	assert.Equal(t, []string{"high", "medium", "low"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()

	var firstExecuted, secondExecuted bool

	bus.Subscribe(events.EventTypeFloorChanged, events.NewListener("first", 100, func(e events.Event) error {
		firstExecuted = true
		e.Cancel()
		return nil
	}))
	bus.Subscribe(events.EventTypeFloorChanged, events.NewListener("second", 200, func(e events.Event) error {
		secondExecuted = true
		return nil
	}))

	event := &events.FloorChangedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeFloorChanged},
		From:      1,
		To:        2,
	}
	require.NoError(t, bus.Emit(event))

	assert.True(t, firstExecuted)
	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerError(t *testing.T) {
	bus := events.NewBus()
	boom := errors.New("boom")

	bus.Subscribe(events.EventTypeDungeonCompleted, events.NewListener("broken", 100, func(events.Event) error {
		return boom
	}))

	err := bus.Emit(&events.DungeonCompletedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeDungeonCompleted},
		Floor:     3,
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listener broken failed")
}

func TestEventBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBus()
	noop := func(events.Event) error { return nil }

	bus.Subscribe(events.EventTypeDoorOpened, events.NewListener("a", 100, noop))
	bus.Subscribe(events.EventTypeDoorOpened, events.NewListener("b", 200, noop))
	bus.Subscribe(events.EventTypeChestOpened, events.NewListener("c", 100, noop))

	bus.Unsubscribe(events.EventTypeDoorOpened, "a")
	assert.Equal(t, 1, bus.ListenerCount(events.EventTypeDoorOpened))

	bus.Unsubscribe(events.EventTypeDoorOpened, "missing")
	assert.Equal(t, 1, bus.ListenerCount(events.EventTypeDoorOpened))

	bus.Clear()
	assert.Zero(t, bus.ListenerCount(events.EventTypeDoorOpened))
	assert.Zero(t, bus.ListenerCount(events.EventTypeChestOpened))
}

func TestEventBus_NoListeners(t *testing.T) {
	bus := events.NewBus()

	err := bus.Emit(&events.EnemyEncounteredEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeEnemyEncountered},
	})
	assert.NoError(t, err)
}
