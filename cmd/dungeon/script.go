package main

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/services/gameplay"
)

// step is one scripted action: a direction, "stairs", "potion", or
// "door:x,y" / "chest:x,y"
type step struct {
	action string
	dir    dungeon.Direction
	x, y   int
}

// parseScript splits a semicolon or whitespace separated action list. Commas only
// appear inside targets like door:3,4.
func parseScript(raw string) ([]step, error) {
	var steps []step
	for _, field := range strings.Fields(strings.ReplaceAll(raw, ";", " ")) {
		st, err := parseStep(field)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(field string) (step, error) {
	action, target, hasTarget := strings.Cut(strings.ToLower(field), ":")
	switch action {
	case "stairs", "potion":
		return step{action: action}, nil
	case "door", "chest":
		if !hasTarget {
			return step{}, dnderr.InvalidArgumentf("%s needs a target like %s:3,4", action, action)
		}
		xs, ys, ok := strings.Cut(target, ",")
		if !ok {
			return step{}, dnderr.InvalidArgumentf("malformed target %q", target)
		}
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX != nil || errY != nil {
			return step{}, dnderr.InvalidArgumentf("malformed target %q", target)
		}
		return step{action: action, x: x, y: y}, nil
	default:
		dir, err := dungeon.ParseDirection(action)
		if err != nil {
			return step{}, err
		}
		return step{action: "move", dir: dir}, nil
	}
}

// runScript applies each step in order. A rejected step is logged and skipped;
// enemies met on the way are beaten automatically.
func runScript(svc gameplay.Service, state save.SaveState, steps []step) (save.SaveState, bool) {
	for i, st := range steps {
		logger := log.WithFields(log.Fields{
			"step":   i + 1,
			"action": st.action,
			"floor":  state.CurrentFloor,
			"x":      state.PlayerX,
			"y":      state.PlayerY,
		})

		next, completed, err := apply(svc, state, st)
		if err != nil {
			logger.WithError(err).Warn("Step rejected")
			continue
		}
		state = next
		if completed {
			logger.Info("Dungeon completed")
			return state, true
		}
	}
	return state, false
}

func apply(svc gameplay.Service, state save.SaveState, st step) (save.SaveState, bool, error) {
	switch st.action {
	case "stairs":
		next, err := svc.UseStairs(state)
		return next, false, err
	case "potion":
		next, err := svc.UsePotion(state, 0)
		return next, false, err
	case "door":
		next, err := svc.OpenDoor(state, st.x, st.y)
		return next, false, err
	case "chest":
		result, err := svc.OpenChest(state, st.x, st.y)
		if err != nil {
			return state, false, err
		}
		return result.State, false, nil
	}

	result, err := svc.Move(state, st.dir)
	if err != nil {
		return state, false, err
	}
	if result.Encounter == nil {
		return result.State, result.Completed, nil
	}

	battle, err := svc.WinBattle(result.State, *result.Encounter)
	if err != nil {
		return state, false, err
	}
	return battle.State, false, nil
}
