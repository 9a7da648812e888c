package reward

//go:generate mockgen -destination=mock/mock_service.go -package=mockreward -source=service.go

import (
	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// Service rolls enemies, chest contents and battle rewards
type Service interface {
	// RandomEnemy picks an enemy uniformly from the catalog and returns a detached copy
	RandomEnemy() (EnemyTemplate, error)

	// Treasure picks a chest outcome uniformly
	Treasure() (Treasure, error)

	// BattleRewards rolls exp and gold within the enemy's reward ranges
	BattleRewards(enemy EnemyTemplate) (Rewards, error)
}

// Range is an inclusive integer range
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EnemyTemplate describes one enemy kind
type EnemyTemplate struct {
	Name       string `json:"name"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"maxHp"`
	Attack     int    `json:"attack"`
	ExpReward  Range  `json:"expReward"`
	GoldReward Range  `json:"goldReward"`
}

// TreasureType is what a chest held
type TreasureType string

const (
	TreasureKey     TreasureType = "key"
	TreasurePotion  TreasureType = "potion"
	TreasureNothing TreasureType = "nothing"
)

// Treasure is a chest outcome with its log line
type Treasure struct {
	Type    TreasureType `json:"type"`
	Message string       `json:"message"`
}

// Rewards is what a won battle pays out
type Rewards struct {
	Exp  int `json:"exp"`
	Gold int `json:"gold"`
}

var enemies = []EnemyTemplate{
	{Name: "スライム", HP: 20, MaxHP: 20, Attack: 6, ExpReward: Range{Min: 5, Max: 10}, GoldReward: Range{Min: 3, Max: 8}},
	{Name: "ゴブリン", HP: 30, MaxHP: 30, Attack: 8, ExpReward: Range{Min: 10, Max: 15}, GoldReward: Range{Min: 8, Max: 15}},
	{Name: "オーク", HP: 40, MaxHP: 40, Attack: 10, ExpReward: Range{Min: 15, Max: 25}, GoldReward: Range{Min: 15, Max: 25}},
}

var treasures = []Treasure{
	{Type: TreasureKey, Message: "✨ 鍵を見つけました！"},
	{Type: TreasurePotion, Message: "✨ 回復薬を見つけました！"},
	{Type: TreasureNothing, Message: "宝箱は空でした..."},
}

// Enemies returns a copy of the enemy catalog
func Enemies() []EnemyTemplate {
	out := make([]EnemyTemplate, len(enemies))
	copy(out, enemies)
	return out
}

// Treasures returns a copy of the chest outcomes
func Treasures() []Treasure {
	out := make([]Treasure, len(treasures))
	copy(out, treasures)
	return out
}

type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Optional, defaults to a random roller
}

// NewService creates a new reward service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{}

	if cfg != nil && cfg.Roller != nil {
		svc.roller = cfg.Roller
	} else {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// RandomEnemy implements Service.RandomEnemy
func (s *service) RandomEnemy() (EnemyTemplate, error) {
	idx, err := dice.Pick(s.roller, len(enemies))
	if err != nil {
		return EnemyTemplate{}, dnderr.Wrap(err, "failed to roll enemy")
	}
	return enemies[idx], nil
}

// Treasure implements Service.Treasure
func (s *service) Treasure() (Treasure, error) {
	idx, err := dice.Pick(s.roller, len(treasures))
	if err != nil {
		return Treasure{}, dnderr.Wrap(err, "failed to roll treasure")
	}
	return treasures[idx], nil
}

// BattleRewards implements Service.BattleRewards
func (s *service) BattleRewards(enemy EnemyTemplate) (Rewards, error) {
	exp, err := dice.Between(s.roller, enemy.ExpReward.Min, enemy.ExpReward.Max)
	if err != nil {
		return Rewards{}, dnderr.Wrapf(err, "failed to roll exp for %s", enemy.Name)
	}
	gold, err := dice.Between(s.roller, enemy.GoldReward.Min, enemy.GoldReward.Max)
	if err != nil {
		return Rewards{}, dnderr.Wrapf(err, "failed to roll gold for %s", enemy.Name)
	}
	return Rewards{Exp: exp, Gold: gold}, nil
}
