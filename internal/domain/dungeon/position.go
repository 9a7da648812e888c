package dungeon

import (
	"fmt"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// PositionKey identifies one cell across all floors. It is comparable, so it is used
// directly as a map key; its text form is "{floor}-{x}-{y}".
type PositionKey struct {
	Floor int
	X     int
	Y     int
}

// Key builds a position key
func Key(floor, x, y int) PositionKey {
	return PositionKey{Floor: floor, X: x, Y: y}
}

func (k PositionKey) String() string {
	return fmt.Sprintf("%d-%d-%d", k.Floor, k.X, k.Y)
}

// Valid reports whether the key addresses a cell inside the dungeon
func (k PositionKey) Valid() bool {
	return ValidFloor(k.Floor) && InBounds(k.X, k.Y)
}

// MarshalText lets map[PositionKey]T encode as a JSON object keyed by the text form
func (k PositionKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the "{floor}-{x}-{y}" form
func (k *PositionKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePositionKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePositionKey parses the "{floor}-{x}-{y}" form
func ParsePositionKey(raw string) (PositionKey, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return PositionKey{}, dnderr.Validationf("position key %q must look like floor-x-y", raw)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return PositionKey{}, dnderr.Validationf("position key %q has a non-numeric part %q", raw, part)
		}
		values[i] = n
	}

	return PositionKey{Floor: values[0], X: values[1], Y: values[2]}, nil
}
