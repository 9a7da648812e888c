package gameplay

//go:generate mockgen -destination=mock/mock_service.go -package=mockgameplay -source=service.go

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/events"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
)

// DefaultPotionHeal is used when UsePotion is given no positive amount
const DefaultPotionHeal = 30

// Service applies player actions to a save snapshot. Every method is pure with
// respect to its input: the returned state is new and the argument is untouched.
type Service interface {
	// Move steps one cell in the given direction
	Move(state save.SaveState, dir dungeon.Direction) (*MoveResult, error)

	// OpenDoor opens the door at (x, y) next to the player, spending a key if it is locked
	OpenDoor(state save.SaveState, x, y int) (save.SaveState, error)

	// OpenChest opens the chest at (x, y) next to the player and rolls its contents
	OpenChest(state save.SaveState, x, y int) (*ChestResult, error)

	// UseStairs takes the stairs under or next to the player
	UseStairs(state save.SaveState) (save.SaveState, error)

	// UsePotion spends a potion to heal the character
	UsePotion(state save.SaveState, heal int) (save.SaveState, error)

	// WinBattle pays out the rewards for defeating an enemy
	WinBattle(state save.SaveState, enemy reward.EnemyTemplate) (*BattleResult, error)
}

// MoveResult is the outcome of a successful move
type MoveResult struct {
	State     save.SaveState
	Cell      dungeon.CellType
	Encounter *reward.EnemyTemplate // set when the player stepped onto an enemy
	Completed bool                  // set when the player reached the goal
}

// ChestResult is the outcome of opening a chest
type ChestResult struct {
	State    save.SaveState
	Treasure reward.Treasure
}

// BattleResult is the outcome of a won battle
type BattleResult struct {
	State    save.SaveState
	Rewards  reward.Rewards
	LevelUps []character.LevelUpGains
}

type service struct {
	rewards     reward.Service
	roller      dice.Roller
	maxMessages int
	bus         *events.Bus
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	RewardService reward.Service // Required
	Roller        dice.Roller    // Optional, used for level-up rolls
	MaxMessages   int            // Optional, defaults to save.DefaultMaxMessages
	EventBus      *events.Bus    // Optional, receives an event for every completed action
}

// NewService creates a new gameplay service
func NewService(cfg *ServiceConfig) Service {
	if cfg.RewardService == nil {
		panic("reward service is required")
	}

	svc := &service{
		rewards:     cfg.RewardService,
		roller:      cfg.Roller,
		maxMessages: cfg.MaxMessages,
		bus:         cfg.EventBus,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.maxMessages <= 0 {
		svc.maxMessages = save.DefaultMaxMessages
	}

	return svc
}

// Move implements Service.Move
func (s *service) Move(state save.SaveState, dir dungeon.Direction) (*MoveResult, error) {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return nil, dnderr.InvalidArgumentf("unknown direction %q", dir)
	}

	x, y := state.PlayerX+dx, state.PlayerY+dy
	if !dungeon.CanMoveTo(x, y, state.CurrentFloor, state.DoorStates, state.ChestStates) {
		return nil, dnderr.InvalidArgumentf("cannot move %s from (%d, %d)", dir, state.PlayerX, state.PlayerY).
			WithMeta("floor", state.CurrentFloor).
			WithMeta("x", x).
			WithMeta("y", y)
	}

	cell, err := dungeon.CellAt(state.CurrentFloor, x, y)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{
		State: state.WithPlayerPosition(state.CurrentFloor, x, y),
		Cell:  cell,
	}

	switch cell {
	case dungeon.CellEnemy:
		enemy, err := s.rewards.RandomEnemy()
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll encounter")
		}
		result.Encounter = &enemy
		result.State = result.State.WithMessage(fmt.Sprintf("%sが現れた！", enemy.Name), s.maxMessages)
		s.emit(&events.EnemyEncounteredEvent{
			BaseEvent: s.base(events.EventTypeEnemyEncountered, result.State),
			Enemy:     enemy,
			Floor:     state.CurrentFloor,
			X:         x,
			Y:         y,
		})
	case dungeon.CellGoal:
		result.Completed = true
		result.State = result.State.WithMessage("🎉 ダンジョンを踏破しました！", s.maxMessages)
		s.emit(&events.DungeonCompletedEvent{
			BaseEvent: s.base(events.EventTypeDungeonCompleted, result.State),
			Floor:     state.CurrentFloor,
		})
	}

	return result, nil
}

// OpenDoor implements Service.OpenDoor
func (s *service) OpenDoor(state save.SaveState, x, y int) (save.SaveState, error) {
	cell, err := s.adjacentCell(state, x, y)
	if err != nil {
		return state, err
	}
	if !cell.IsDoor() {
		return state, dnderr.InvalidArgumentf("no door at (%d, %d)", x, y)
	}
	if state.DoorOpen(x, y) {
		return state, dnderr.InvalidArgumentf("door at (%d, %d) is already open", x, y)
	}

	next := state
	message := "🚪 扉を開けました"
	if cell == dungeon.CellLockedDoor {
		if state.Keys < 1 {
			return state, dnderr.InsufficientResourcef("a key is required to open the door at (%d, %d)", x, y).
				WithMeta("keys", state.Keys)
		}
		next = next.WithItems(nil, save.Count(state.Keys-1))
		message = "🔑 鍵を使って扉を開けました"
	}

	next = next.
		WithDoorState(state.CurrentFloor, x, y, true).
		WithMessage(message, s.maxMessages)

	s.emit(&events.DoorOpenedEvent{
		BaseEvent: s.base(events.EventTypeDoorOpened, next),
		Floor:     state.CurrentFloor,
		X:         x,
		Y:         y,
		UsedKey:   cell == dungeon.CellLockedDoor,
	})

	return next, nil
}

// OpenChest implements Service.OpenChest
func (s *service) OpenChest(state save.SaveState, x, y int) (*ChestResult, error) {
	cell, err := s.adjacentCell(state, x, y)
	if err != nil {
		return nil, err
	}
	if cell != dungeon.CellChest {
		return nil, dnderr.InvalidArgumentf("no chest at (%d, %d)", x, y)
	}
	if state.ChestOpened(x, y) {
		return nil, dnderr.InvalidArgumentf("chest at (%d, %d) is already open", x, y)
	}

	treasure, err := s.rewards.Treasure()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll treasure")
	}

	next := state.WithChestState(state.CurrentFloor, x, y, true)
	switch treasure.Type {
	case reward.TreasureKey:
		next = next.WithItems(nil, save.Count(state.Keys+1))
	case reward.TreasurePotion:
		next = next.WithItems(save.Count(state.Potions+1), nil)
	}

	next = next.WithMessage(treasure.Message, s.maxMessages)
	s.emit(&events.ChestOpenedEvent{
		BaseEvent: s.base(events.EventTypeChestOpened, next),
		Floor:     state.CurrentFloor,
		X:         x,
		Y:         y,
		Treasure:  treasure,
	})

	return &ChestResult{
		State:    next,
		Treasure: treasure,
	}, nil
}

// UseStairs implements Service.UseStairs
func (s *service) UseStairs(state save.SaveState) (save.SaveState, error) {
	stairs, ok := s.findStairs(state)
	if !ok {
		return state, dnderr.InvalidArgumentf("no stairs near (%d, %d)", state.PlayerX, state.PlayerY).
			WithMeta("floor", state.CurrentFloor)
	}

	target := state.CurrentFloor + 1
	if stairs == dungeon.CellStairsUp {
		target = state.CurrentFloor - 1
	}
	if !dungeon.ValidFloor(target) {
		return state, dnderr.InvalidArgumentf("there is no floor %d", target)
	}

	point, ok := state.PlayerPositions[target]
	if !ok {
		point = save.DefaultPlayerPositions()[target]
	}

	next := state.
		WithPlayerPosition(target, point.X, point.Y).
		WithMessage(fmt.Sprintf("%d階に移動しました", target), s.maxMessages)

	s.emit(&events.FloorChangedEvent{
		BaseEvent: s.base(events.EventTypeFloorChanged, next),
		From:      state.CurrentFloor,
		To:        target,
	})

	return next, nil
}

// UsePotion implements Service.UsePotion
func (s *service) UsePotion(state save.SaveState, heal int) (save.SaveState, error) {
	if state.Character == nil {
		return state, dnderr.InvalidArgument("save has no character")
	}
	if state.Potions < 1 {
		return state, dnderr.InsufficientResourcef("no potions left")
	}
	if heal <= 0 {
		heal = DefaultPotionHeal
	}

	before := state.Character.HP
	healed := state.Character.Heal(heal)

	return state.
		WithCharacter(healed).
		WithItems(save.Count(state.Potions-1), nil).
		WithMessage(fmt.Sprintf("💊 回復薬を使った！HPが%d回復した", healed.HP-before), s.maxMessages), nil
}

// WinBattle implements Service.WinBattle
func (s *service) WinBattle(state save.SaveState, enemy reward.EnemyTemplate) (*BattleResult, error) {
	if state.Character == nil {
		return nil, dnderr.InvalidArgument("save has no character")
	}

	rewards, err := s.rewards.BattleRewards(enemy)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll rewards for %s", enemy.Name)
	}

	c := state.Character.GainExpAndGold(rewards.Exp, rewards.Gold)
	next := state.WithMessage(
		fmt.Sprintf("%sを倒した！ 経験値%d・ゴールド%dを獲得", enemy.Name, rewards.Exp, rewards.Gold),
		s.maxMessages,
	)

	var levelUps []character.LevelUpGains
	for c.CanLevelUp() && c.ExpToNext > 0 {
		var gains character.LevelUpGains
		c, gains, err = c.LevelUp(s.roller)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to level up")
		}
		levelUps = append(levelUps, gains)
		next = next.WithMessage(fmt.Sprintf("⬆️ レベル%dになった！", c.Level), s.maxMessages)
	}

	next = next.WithCharacter(c)

	s.emit(&events.BattleWonEvent{
		BaseEvent: s.base(events.EventTypeBattleWon, next),
		Enemy:     enemy,
		Rewards:   rewards,
	})
	for i, gains := range levelUps {
		s.emit(&events.LevelUpEvent{
			BaseEvent: s.base(events.EventTypeLevelUp, next),
			Level:     c.Level - len(levelUps) + i + 1,
			Gains:     gains,
		})
	}

	return &BattleResult{
		State:    next,
		Rewards:  rewards,
		LevelUps: levelUps,
	}, nil
}

// base builds the common event fields; the actor is a copy of the state's character
func (s *service) base(eventType events.EventType, state save.SaveState) events.BaseEvent {
	var actor *character.Character
	if state.Character != nil {
		c := *state.Character
		actor = &c
	}
	return events.BaseEvent{Type: eventType, Actor: actor}
}

// emit publishes to the bus when one is configured. Listener failures are logged
// and never undo the action.
func (s *service) emit(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(event); err != nil {
		log.WithField("event", event.GetType()).WithError(err).Warn("Event listener failed")
	}
}

// adjacentCell returns the static cell at (x, y) if it borders the player
func (s *service) adjacentCell(state save.SaveState, x, y int) (dungeon.CellType, error) {
	if !dungeon.IsAdjacent(state.PlayerX, state.PlayerY, x, y) {
		return dungeon.CellWall, dnderr.InvalidArgumentf("(%d, %d) is not next to the player", x, y).
			WithMeta("player_x", state.PlayerX).
			WithMeta("player_y", state.PlayerY)
	}
	return dungeon.CellAt(state.CurrentFloor, x, y)
}

// findStairs prefers stairs under the player, then the first adjacent stairs in
// neighbor order
func (s *service) findStairs(state save.SaveState) (dungeon.CellType, bool) {
	if cell, err := state.CurrentCell(); err == nil && cell.IsStairs() {
		return cell, true
	}
	for _, adj := range dungeon.AdjacentCells(state.PlayerX, state.PlayerY, state.CurrentFloor) {
		if adj.Cell.IsStairs() {
			return adj.Cell, true
		}
	}
	return dungeon.CellWall, false
}
