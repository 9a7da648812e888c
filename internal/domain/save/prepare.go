package save

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// Prepared fills the defaults of a typed snapshot. A zero count takes its default
// the same way Prepare treats a parsed zero, nil maps become empty, missing floor
// positions become the canonical starting points and CharacterID follows the
// embedded character.
func (s SaveState) Prepared() SaveState {
	out := s.Clone()
	if out.Character != nil {
		out.CharacterID = out.Character.ID
	}
	out.CurrentFloor = nonZeroOr(out.CurrentFloor, DefaultFloor)
	out.PlayerX = nonZeroOr(out.PlayerX, DefaultPlayerX)
	out.PlayerY = nonZeroOr(out.PlayerY, DefaultPlayerY)
	out.Potions = nonZeroOr(out.Potions, DefaultPotions)
	out.Keys = nonZeroOr(out.Keys, DefaultKeys)
	if out.DoorStates == nil {
		out.DoorStates = map[dungeon.PositionKey]bool{}
	}
	if out.ChestStates == nil {
		out.ChestStates = map[dungeon.PositionKey]bool{}
	}
	if out.PlayerPositions == nil {
		out.PlayerPositions = DefaultPlayerPositions()
	}
	if out.Messages == nil {
		out.Messages = []string{}
	}
	return out
}

// Prepare sanitizes an arbitrary decoded object into a canonical snapshot. Integers
// are parsed leniently; a missing, unparseable or zero value takes its default. A missing
// character or character id, or a malformed position key, is a validation error.
func Prepare(raw map[string]any) (SaveState, error) {
	if raw == nil {
		return SaveState{}, dnderr.Validation("save data is required")
	}

	c, err := decodeCharacter(raw["character"])
	if err != nil {
		return SaveState{}, err
	}

	doors, err := decodeOverrides(raw["doorStates"], "doorStates")
	if err != nil {
		return SaveState{}, err
	}
	chests, err := decodeOverrides(raw["chestStates"], "chestStates")
	if err != nil {
		return SaveState{}, err
	}
	positions, err := decodePositions(raw["playerPositions"])
	if err != nil {
		return SaveState{}, err
	}
	messages, err := decodeMessages(raw["messages"])
	if err != nil {
		return SaveState{}, err
	}

	return SaveState{
		Character:       c,
		CharacterID:     c.ID,
		CurrentFloor:    intOr(raw["currentFloor"], DefaultFloor),
		PlayerX:         intOr(raw["playerX"], DefaultPlayerX),
		PlayerY:         intOr(raw["playerY"], DefaultPlayerY),
		Potions:         intOr(raw["potions"], DefaultPotions),
		Keys:            intOr(raw["keys"], DefaultKeys),
		DoorStates:      doors,
		ChestStates:     chests,
		PlayerPositions: positions,
		Messages:        messages,
	}.Prepared(), nil
}

// Decode parses a JSON payload through Prepare
func Decode(data []byte) (SaveState, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return SaveState{}, dnderr.WrapWithCode(err, dnderr.CodeValidation, "save data is not valid JSON")
	}
	return Prepare(raw)
}

// ToRaw converts a snapshot into the generic shape Prepare accepts
func (s SaveState) ToRaw() (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode save data")
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode save data")
	}
	return raw, nil
}

func decodeCharacter(v any) (*character.Character, error) {
	var c character.Character
	switch typed := v.(type) {
	case nil:
		return nil, dnderr.Validation("character is required")
	case character.Character:
		c = typed
	case *character.Character:
		if typed == nil {
			return nil, dnderr.Validation("character is required")
		}
		c = *typed
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "character is malformed")
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "character is malformed")
		}
	}

	if c.ID == "" {
		return nil, dnderr.Validation("character id is required")
	}
	return &c, nil
}

func decodeOverrides(v any, field string) (map[dungeon.PositionKey]bool, error) {
	out := map[dungeon.PositionKey]bool{}
	switch typed := v.(type) {
	case nil:
		return out, nil
	case map[dungeon.PositionKey]bool:
		for k, open := range typed {
			out[k] = open
		}
		return out, nil
	case map[string]bool:
		for raw, open := range typed {
			key, err := dungeon.ParsePositionKey(raw)
			if err != nil {
				return nil, dnderr.Wrapf(err, "invalid %s", field)
			}
			out[key] = open
		}
		return out, nil
	case map[string]any:
		for raw, value := range typed {
			key, err := dungeon.ParsePositionKey(raw)
			if err != nil {
				return nil, dnderr.Wrapf(err, "invalid %s", field)
			}
			open, ok := value.(bool)
			if !ok {
				return nil, dnderr.Validationf("%s[%s] must be a boolean", field, raw)
			}
			out[key] = open
		}
		return out, nil
	default:
		return nil, dnderr.Validationf("%s must be an object", field)
	}
}

func decodePositions(v any) (map[int]Point, error) {
	switch typed := v.(type) {
	case nil:
		return DefaultPlayerPositions(), nil
	case map[int]Point:
		out := make(map[int]Point, len(typed))
		for floor, p := range typed {
			out[floor] = p
		}
		return out, nil
	case map[string]any:
		out := make(map[int]Point, len(typed))
		for rawFloor, value := range typed {
			floor, err := strconv.Atoi(rawFloor)
			if err != nil {
				return nil, dnderr.Validationf("playerPositions key %q is not a floor number", rawFloor)
			}
			point, ok := value.(map[string]any)
			if !ok {
				return nil, dnderr.Validationf("playerPositions[%s] must be an object", rawFloor)
			}
			out[floor] = Point{X: intOr(point["x"], 0), Y: intOr(point["y"], 0)}
		}
		return out, nil
	default:
		return nil, dnderr.Validation("playerPositions must be an object")
	}
}

func decodeMessages(v any) ([]string, error) {
	switch typed := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for i, item := range typed {
			msg, ok := item.(string)
			if !ok {
				return nil, dnderr.Validationf("messages[%d] must be a string", i)
			}
			out = append(out, msg)
		}
		return out, nil
	default:
		return nil, dnderr.Validation("messages must be a list")
	}
}

func nonZeroOr(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

// intOr parses v the way a lenient integer parse would: numbers are truncated,
// strings are read up to the first non-digit. Anything unparseable yields def.
func intOr(v any, def int) int {
	switch typed := v.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return def
		}
		return int(math.Trunc(typed))
	case json.Number:
		return intOr(typed.String(), def)
	case string:
		if n, ok := leadingInt(typed); ok {
			return n
		}
	}
	return def
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
