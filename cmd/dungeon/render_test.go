package main

import (
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-saves/internal/testutils"
)

func TestRenderFloor(t *testing.T) {
	state := testutils.CreateTestSave("char-1", "アレン").
		WithDoorState(1, 3, 1, true).
		WithChestState(1, 3, 2, true)

	out, err := renderFloor(state)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(color.ClearCode(out), "\n"), "\n")
	assert.Equal(t, []string{
		"1階",
		"########",
		"#../...#",
		"#.#cE#.#",
		"#D#..#.#",
		"#...#..#",
		"###.E.##",
		"#@..>..#",
		"########",
	}, lines)
}

func TestRenderFloor_InvalidFloor(t *testing.T) {
	state := testutils.CreateTestSave("char-1", "アレン")
	state.CurrentFloor = 9

	_, err := renderFloor(state)
	assert.Error(t, err)
}

func TestRenderStatus(t *testing.T) {
	state := testutils.CreateTestSave("char-1", "アレン")

	out := color.ClearCode(renderStatus(state))
	assert.Contains(t, out, "アレン Lv1 HP 50/50 EXP 0/100 G 0")
	assert.Contains(t, out, "回復薬 3  鍵 0")
	assert.Contains(t, out, "- アレンがダンジョンに入りました！")
}
