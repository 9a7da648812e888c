package dungeon

import (
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

const (
	// Size is the width and height of every floor
	Size = 8

	// FirstFloor and LastFloor bound the floor index
	FirstFloor = 1
	LastFloor  = 3
)

// Floor is an immutable 8x8 layout indexed [y][x]
type Floor [Size][Size]CellType

// floors is indexed by floor number; index 0 is unused
var floors = layouts()

func layouts() [LastFloor + 1]Floor {
	const (
		w = CellWall
		f = CellFloor
		e = CellEnemy
		g = CellGoal
		d = CellDoor
		l = CellLockedDoor
		c = CellChest
		u = CellStairsUp
		s = CellStairsDown
	)

	return [LastFloor + 1]Floor{
		1: {
			{w, w, w, w, w, w, w, w},
			{w, f, f, d, f, f, f, w},
			{w, f, w, c, e, w, f, w},
			{w, d, w, f, f, w, f, w},
			{w, f, f, f, w, f, f, w},
			{w, w, w, f, e, f, w, w},
			{w, u, f, f, s, f, f, w},
			{w, w, w, w, w, w, w, w},
		},
		2: {
			{w, w, w, w, w, w, w, w},
			{w, u, f, f, f, f, f, w},
			{w, f, w, c, e, w, f, w},
			{w, f, w, f, l, w, d, w},
			{w, f, f, f, w, f, f, w},
			{w, w, c, f, e, f, w, w},
			{w, f, f, f, s, f, f, w},
			{w, w, w, w, w, w, w, w},
		},
		3: {
			{w, w, w, w, w, w, w, w},
			{w, u, f, f, f, f, f, w},
			{w, f, w, c, e, w, f, w},
			{w, l, w, f, f, w, l, w},
			{w, f, f, f, w, f, f, w},
			{w, w, w, l, e, l, w, w},
			{w, c, f, f, f, f, f, w},
			{w, w, w, w, g, w, w, w},
		},
	}
}

// Floors returns the valid floor numbers in ascending order
func Floors() []int {
	out := make([]int, 0, LastFloor-FirstFloor+1)
	for floor := FirstFloor; floor <= LastFloor; floor++ {
		out = append(out, floor)
	}
	return out
}

// ValidFloor reports whether floor names one of the fixed layouts
func ValidFloor(floor int) bool {
	return floor >= FirstFloor && floor <= LastFloor
}

// InBounds reports whether (x, y) lies on an 8x8 floor
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// Layout returns a copy of the floor layout
func Layout(floor int) (Floor, error) {
	if !ValidFloor(floor) {
		return Floor{}, dnderr.OutOfBoundsf("floor %d does not exist", floor).
			WithMeta("floor", floor)
	}
	return floors[floor], nil
}

// CellAt returns the static cell type at (x, y) on floor
func CellAt(floor, x, y int) (CellType, error) {
	if !ValidFloor(floor) || !InBounds(x, y) {
		return CellWall, dnderr.OutOfBoundsf("cell (%d,%d) on floor %d is outside the dungeon", x, y, floor).
			WithMeta("floor", floor).
			WithMeta("x", x).
			WithMeta("y", y)
	}
	return floors[floor][y][x], nil
}
