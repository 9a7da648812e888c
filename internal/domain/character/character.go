// Package character is the character record embedded in every save. Characters are
// plain values: every mutator returns a changed copy.
package character

import (
	"math"
	"strings"

	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

const (
	DefaultLevel     = 1
	DefaultExpToNext = 100
	DefaultHP        = 50
	DefaultAttack    = 10
	DefaultDefense   = 5
)

// Character is owned by the character service; saves only need ID and Name
type Character struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`
	ExpToNext int    `json:"expToNext"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
	Gold      int    `json:"gold"`
}

// LevelUpGains reports how much each stat grew on a level up
type LevelUpGains struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// New creates a level 1 character with rolled stats
func New(name string, roller dice.Roller) (Character, error) {
	stats, err := RandomStats(roller)
	if err != nil {
		return Character{}, err
	}
	stats.Name = name
	return stats, nil
}

// RandomStats rolls starting stats: hp 40-60, attack 8-12, defense 3-7
func RandomStats(roller dice.Roller) (Character, error) {
	hp, err := dice.Between(roller, 40, 60)
	if err != nil {
		return Character{}, dnderr.Wrap(err, "failed to roll hp")
	}
	attack, err := dice.Between(roller, 8, 12)
	if err != nil {
		return Character{}, dnderr.Wrap(err, "failed to roll attack")
	}
	defense, err := dice.Between(roller, 3, 7)
	if err != nil {
		return Character{}, dnderr.Wrap(err, "failed to roll defense")
	}

	return Character{
		Level:     DefaultLevel,
		ExpToNext: DefaultExpToNext,
		HP:        hp,
		MaxHP:     hp,
		Attack:    attack,
		Defense:   defense,
	}, nil
}

// Validate collects every stat problem; an empty result means the character is valid
func (c Character) Validate() []string {
	var problems []string

	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "character name is required")
	}
	if c.Level < 1 {
		problems = append(problems, "level must be at least 1")
	}
	if c.HP < 0 {
		problems = append(problems, "hp must not be negative")
	}
	if c.MaxHP < 1 {
		problems = append(problems, "max hp must be at least 1")
	}
	if c.HP > c.MaxHP {
		problems = append(problems, "hp exceeds max hp")
	}
	if c.Attack < 1 {
		problems = append(problems, "attack must be at least 1")
	}
	if c.Defense < 0 {
		problems = append(problems, "defense must not be negative")
	}
	if c.Exp < 0 {
		problems = append(problems, "exp must not be negative")
	}
	if c.Gold < 0 {
		problems = append(problems, "gold must not be negative")
	}

	return problems
}

// Clean trims the name and replaces zero or out of range stats with defaults.
// A zero stat takes the default, so Clean is meant for raw input, not live characters.
func (c Character) Clean() Character {
	c.Name = strings.TrimSpace(c.Name)
	c.Level = atLeast(1, orDefault(c.Level, DefaultLevel))
	c.Exp = atLeast(0, c.Exp)
	c.ExpToNext = atLeast(1, orDefault(c.ExpToNext, DefaultExpToNext))
	c.HP = atLeast(0, orDefault(c.HP, DefaultHP))
	c.MaxHP = atLeast(1, orDefault(c.MaxHP, DefaultHP))
	c.Attack = atLeast(1, orDefault(c.Attack, DefaultAttack))
	c.Defense = atLeast(0, orDefault(c.Defense, DefaultDefense))
	c.Gold = atLeast(0, c.Gold)
	return c
}

// GainExpAndGold adds battle rewards
func (c Character) GainExpAndGold(exp, gold int) Character {
	c.Exp += exp
	c.Gold += gold
	return c
}

// TakeDamage lowers hp, never below zero
func (c Character) TakeDamage(damage int) Character {
	c.HP = atLeast(0, c.HP-damage)
	return c
}

// Heal raises hp, never above max hp
func (c Character) Heal(amount int) Character {
	c.HP = min(c.MaxHP, c.HP+amount)
	return c
}

// FullHeal restores hp to max
func (c Character) FullHeal() Character {
	c.HP = c.MaxHP
	return c
}

// SpendGold fails rather than clamping when the character cannot pay
func (c Character) SpendGold(amount int) (Character, error) {
	if c.Gold < amount {
		return c, dnderr.InsufficientResourcef("not enough gold: have %d, need %d", c.Gold, amount).
			WithMeta("gold", c.Gold).
			WithMeta("amount", amount)
	}
	c.Gold -= amount
	return c, nil
}

// CanLevelUp reports whether enough exp has been collected
func (c Character) CanLevelUp() bool {
	return c.Exp >= c.ExpToNext
}

// ExpNeeded returns the exp still missing for the next level
func (c Character) ExpNeeded() int {
	return atLeast(0, c.ExpToNext-c.Exp)
}

// IsDead reports whether hp has run out
func (c Character) IsDead() bool {
	return c.HP <= 0
}

// IsFullHP reports whether hp is at max
func (c Character) IsFullHP() bool {
	return c.HP >= c.MaxHP
}

// LevelUp spends expToNext exp and rolls stat gains: hp 8-12 (healed as well),
// attack 2-4, defense 1-3. The next threshold is floor(100 * 1.2^level).
func (c Character) LevelUp(roller dice.Roller) (Character, LevelUpGains, error) {
	if !c.CanLevelUp() {
		return c, LevelUpGains{}, dnderr.InsufficientResourcef("not enough exp to level up: need %d more", c.ExpNeeded())
	}

	var gains LevelUpGains
	var err error
	if gains.HP, err = dice.Between(roller, 8, 12); err != nil {
		return c, LevelUpGains{}, dnderr.Wrap(err, "failed to roll hp gain")
	}
	if gains.Attack, err = dice.Between(roller, 2, 4); err != nil {
		return c, LevelUpGains{}, dnderr.Wrap(err, "failed to roll attack gain")
	}
	if gains.Defense, err = dice.Between(roller, 1, 3); err != nil {
		return c, LevelUpGains{}, dnderr.Wrap(err, "failed to roll defense gain")
	}

	c.Exp -= c.ExpToNext
	c.ExpToNext = int(math.Floor(100 * math.Pow(1.2, float64(c.Level))))
	c.Level++
	c.MaxHP += gains.HP
	c.HP += gains.HP
	c.Attack += gains.Attack
	c.Defense += gains.Defense

	return c, gains, nil
}

func atLeast(floor, v int) int {
	return max(floor, v)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
