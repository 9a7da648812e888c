package main

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
)

var (
	colorWall   = color.Style{color.FgGray}
	colorFloor  = color.Style{color.FgWhite}
	colorEnemy  = color.Style{color.FgRed, color.OpBold}
	colorGoal   = color.Style{color.FgYellow, color.OpBold}
	colorDoor   = color.Style{color.FgMagenta}
	colorItem   = color.Style{color.FgGreen, color.OpBold}
	colorStairs = color.Style{color.FgCyan}
	colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	colorSubtle = color.Style{color.FgGray, color.OpBold}
)

// renderFloor draws the current floor with door and chest state applied
func renderFloor(state save.SaveState) (string, error) {
	layout, err := dungeon.Layout(state.CurrentFloor)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(colorSubtle.Sprintf("%d階", state.CurrentFloor))
	b.WriteString("\n")
	for y := 0; y < dungeon.Size; y++ {
		for x := 0; x < dungeon.Size; x++ {
			if x == state.PlayerX && y == state.PlayerY {
				b.WriteString(colorPlayer.Sprint("@"))
				continue
			}
			b.WriteString(renderCell(state, layout[y][x], x, y))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func renderCell(state save.SaveState, cell dungeon.CellType, x, y int) string {
	switch cell {
	case dungeon.CellWall:
		return colorWall.Sprint("#")
	case dungeon.CellEnemy:
		return colorEnemy.Sprint("E")
	case dungeon.CellGoal:
		return colorGoal.Sprint("G")
	case dungeon.CellDoor, dungeon.CellLockedDoor:
		if state.DoorOpen(x, y) {
			return colorDoor.Sprint("/")
		}
		if cell == dungeon.CellLockedDoor {
			return colorDoor.Sprint("L")
		}
		return colorDoor.Sprint("D")
	case dungeon.CellChest:
		if state.ChestOpened(x, y) {
			return colorSubtle.Sprint("c")
		}
		return colorItem.Sprint("C")
	case dungeon.CellStairsUp:
		return colorStairs.Sprint("<")
	case dungeon.CellStairsDown:
		return colorStairs.Sprint(">")
	default:
		return colorFloor.Sprint(".")
	}
}

// renderStatus summarizes the character, items and the message log
func renderStatus(state save.SaveState) string {
	var b strings.Builder
	if c := state.Character; c != nil {
		fmt.Fprintf(&b, "%s Lv%d HP %d/%d EXP %d/%d G %d\n",
			c.Name, c.Level, c.HP, c.MaxHP, c.Exp, c.ExpToNext, c.Gold)
	}
	fmt.Fprintf(&b, "%s %d  %s %d\n", colorItem.Sprint("回復薬"), state.Potions, colorItem.Sprint("鍵"), state.Keys)
	for _, msg := range state.Messages {
		fmt.Fprintf(&b, "- %s\n", msg)
	}
	return b.String()
}
