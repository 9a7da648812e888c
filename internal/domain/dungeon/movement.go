package dungeon

// AdjacentCell is one in-bounds neighbor of a position
type AdjacentCell struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Cell      CellType  `json:"cell"`
	Direction Direction `json:"direction"`
}

// CanMoveTo decides whether a plain move onto (x, y) is legal. Doors are passable only
// when doorStates holds true for their key; a missing key means closed. Chests and
// stairs are never entered by walking, they have their own actions. An opened chest
// still blocks, so chestStates does not affect the verdict.
func CanMoveTo(x, y, floor int, doorStates, chestStates map[PositionKey]bool) bool {
	cell, err := CellAt(floor, x, y)
	if err != nil {
		return false
	}

	if cell.IsDoor() {
		return doorStates[Key(floor, x, y)]
	}

	return !cell.Blocks()
}

// AdjacentCells lists the in-bounds neighbors of (x, y) in the order up, down, left,
// right. An invalid floor or an out-of-bounds origin has no neighbors.
func AdjacentCells(x, y, floor int) []AdjacentCell {
	if !ValidFloor(floor) || !InBounds(x, y) {
		return []AdjacentCell{}
	}

	adjacent := make([]AdjacentCell, 0, len(directions))
	for _, dir := range directions {
		dx, dy := dir.Delta()
		nx, ny := x+dx, y+dy
		if !InBounds(nx, ny) {
			continue
		}
		adjacent = append(adjacent, AdjacentCell{
			X:         nx,
			Y:         ny,
			Cell:      floors[floor][ny][nx],
			Direction: dir,
		})
	}

	return adjacent
}

// HasAdjacentCellType reports whether any neighbor of (x, y) has the given type
func HasAdjacentCellType(x, y, floor int, cellType CellType) bool {
	for _, cell := range AdjacentCells(x, y, floor) {
		if cell.Cell == cellType {
			return true
		}
	}
	return false
}

// IsAdjacent reports whether (tx, ty) is a direct neighbor of (x, y)
func IsAdjacent(x, y, tx, ty int) bool {
	dx, dy := tx-x, ty-y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}
