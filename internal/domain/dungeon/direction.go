package dungeon

import (
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// Direction is one of the four grid directions. Its value is the literal tag used in
// adjacency listings.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// directions is the fixed neighbor order: up, down, left, right
var directions = []Direction{Up, Down, Left, Right}

// Directions returns the four directions in neighbor order
func Directions() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions)
	return out
}

// Delta returns the x and y offsets for the direction. Up is toward row 0.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParseDirection accepts the literal direction tags
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(raw); d {
	case Up, Down, Left, Right:
		return d, nil
	default:
		return "", dnderr.InvalidArgumentf("unknown direction %q", raw)
	}
}
