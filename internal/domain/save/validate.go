package save

import (
	"strings"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// Validate checks every persistence invariant independently and returns all
// violations. An empty result means the snapshot may be persisted.
func (s SaveState) Validate() []string {
	var problems []string

	if s.Character == nil {
		problems = append(problems, "character is required")
	}
	if s.Character == nil || s.Character.ID == "" {
		problems = append(problems, "character id is required")
	}
	if !dungeon.ValidFloor(s.CurrentFloor) {
		problems = append(problems, "current floor must be between 1 and 3")
	}
	if s.PlayerX < 0 || s.PlayerX >= dungeon.Size {
		problems = append(problems, "player x is out of range")
	}
	if s.PlayerY < 0 || s.PlayerY >= dungeon.Size {
		problems = append(problems, "player y is out of range")
	}
	if s.Potions < 0 {
		problems = append(problems, "potions must not be negative")
	}
	if s.Keys < 0 {
		problems = append(problems, "keys must not be negative")
	}

	return problems
}

// Check returns Validate's findings as a validation error, or nil
func (s SaveState) Check() error {
	return ValidationError(s.Validate())
}

// ValidationError wraps validator findings into a coded error carrying the list
// under the "problems" metadata key. It returns nil for an empty list.
func ValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return dnderr.Validationf("save data is invalid: %s", strings.Join(problems, "; ")).
		WithMeta("problems", problems)
}
