package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/dungeon-saves/internal/dice/mock"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/services/gameplay"
	mockgameplay "github.com/KirkDiggler/dungeon-saves/internal/services/gameplay/mock"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
	"github.com/KirkDiggler/dungeon-saves/internal/testutils"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("up Right;door:3,1  chest:3,2 stairs potion")
	require.NoError(t, err)

	assert.Equal(t, []step{
		{action: "move", dir: dungeon.Up},
		{action: "move", dir: dungeon.Right},
		{action: "door", x: 3, y: 1},
		{action: "chest", x: 3, y: 2},
		{action: "stairs"},
		{action: "potion"},
	}, steps)
}

func TestParseScript_Empty(t *testing.T) {
	steps, err := parseScript("  ")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestParseScript_Errors(t *testing.T) {
	for _, raw := range []string{"north", "door", "door:3", "chest:a,b"} {
		t.Run(raw, func(t *testing.T) {
			_, err := parseScript(raw)
			assert.True(t, dnderr.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestRunScript_FightsAndTakesStairs(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	// slime, then the lowest exp and gold
	roller.SetRolls([]int{1, 1, 1})
	svc := gameplay.NewService(&gameplay.ServiceConfig{
		RewardService: reward.NewService(&reward.ServiceConfig{Roller: roller}),
		Roller:        roller,
		MaxMessages:   10,
	})

	steps, err := parseScript("up right right up right down stairs")
	require.NoError(t, err)

	state, completed := runScript(svc, testutils.CreateTestSave("char-1", "アレン"), steps)
	assert.False(t, completed)

	assert.Equal(t, 2, state.CurrentFloor)
	assert.Equal(t, 1, state.PlayerX)
	assert.Equal(t, 1, state.PlayerY)
	assert.Equal(t, save.Point{X: 4, Y: 5}, state.PlayerPositions[1])
	assert.Equal(t, 5, state.Character.Exp)
	assert.Equal(t, 3, state.Character.Gold)
	assert.Equal(t, []string{
		"アレンがダンジョンに入りました！",
		"スライムが現れた！",
		"スライムを倒した！ 経験値5・ゴールド3を獲得",
		"2階に移動しました",
	}, state.Messages)
	assert.Zero(t, roller.Remaining())
}

func TestRunScript_StopsAtGoal(t *testing.T) {
	svc := gameplay.NewService(&gameplay.ServiceConfig{
		RewardService: reward.NewService(nil),
	})

	start := testutils.CreateTestSave("char-1", "アレン").WithPlayerPosition(3, 4, 6)
	state, completed := runScript(svc, start, []step{
		{action: "move", dir: dungeon.Down},
		{action: "move", dir: dungeon.Up},
	})

	assert.True(t, completed)
	assert.Equal(t, 4, state.PlayerX)
	assert.Equal(t, 7, state.PlayerY)
}

func TestRunScript_SkipsRejectedSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockgameplay.NewMockService(ctrl)

	start := testutils.CreateTestSave("char-1", "アリス")
	moved := start.WithPlayerPosition(1, 2, 6)
	healed := moved.WithItems(save.Count(2), nil)

	gomock.InOrder(
		svc.EXPECT().OpenDoor(start, 3, 1).Return(start, dnderr.InvalidArgument("no door next to the player")),
		svc.EXPECT().Move(start, dungeon.Right).Return(&gameplay.MoveResult{State: moved, Cell: dungeon.CellFloor}, nil),
		svc.EXPECT().UsePotion(moved, 0).Return(healed, nil),
	)

	steps, err := parseScript("door:3,1;right potion")
	require.NoError(t, err)

	state, completed := runScript(svc, start, steps)
	assert.False(t, completed)
	assert.Equal(t, healed, state)
}
