// Package dungeon holds the fixed floor layouts and the rules for moving across them.
package dungeon

import (
	"github.com/zyedidia/generic/mapset"
)

// CellType is the semantic category of a grid cell. The integer values match the
// layout literals and are stable on the wire.
type CellType int

const (
	CellWall       CellType = 0
	CellFloor      CellType = 1
	CellEnemy      CellType = 2
	CellGoal       CellType = 3
	CellDoor       CellType = 4
	CellLockedDoor CellType = 5
	CellChest      CellType = 6
	CellStairsUp   CellType = 7
	CellStairsDown CellType = 8
)

// blocking cells can never be entered by a plain move. Doors are handled separately
// because their state lives in the save.
var blocking = newCellSet(CellWall, CellChest, CellStairsUp, CellStairsDown)

func newCellSet(cells ...CellType) mapset.Set[CellType] {
	set := mapset.New[CellType]()
	for _, cell := range cells {
		set.Put(cell)
	}
	return set
}

func (c CellType) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellFloor:
		return "floor"
	case CellEnemy:
		return "enemy"
	case CellGoal:
		return "goal"
	case CellDoor:
		return "door"
	case CellLockedDoor:
		return "locked_door"
	case CellChest:
		return "chest"
	case CellStairsUp:
		return "stairs_up"
	case CellStairsDown:
		return "stairs_down"
	default:
		return "unknown"
	}
}

// IsDoor reports whether the cell is a door, locked or not
func (c CellType) IsDoor() bool {
	return c == CellDoor || c == CellLockedDoor
}

// IsStairs reports whether the cell is a staircase in either direction
func (c CellType) IsStairs() bool {
	return c == CellStairsUp || c == CellStairsDown
}

// Blocks reports whether a plain move onto the cell is never legal
func (c CellType) Blocks() bool {
	return blocking.Has(c)
}
