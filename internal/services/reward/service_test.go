package reward_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dungeon-saves/internal/dice/mock"
	"github.com/KirkDiggler/dungeon-saves/internal/services/reward"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomEnemy_UniformWithCyclingRoller(t *testing.T) {
	svc := reward.NewService(&reward.ServiceConfig{
		Roller: mockdice.NewCyclingMockRoller(1, 2, 3),
	})

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		enemy, err := svc.RandomEnemy()
		require.NoError(t, err)
		counts[enemy.Name]++
	}

	require.Len(t, counts, 3)
	for name, n := range counts {
		assert.InDelta(t, 1.0/3.0, float64(n)/1000.0, 0.01, name)
	}
}

func TestRandomEnemy_ReturnsDetachedCopy(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1, 1})
	svc := reward.NewService(&reward.ServiceConfig{Roller: roller})

	first, err := svc.RandomEnemy()
	require.NoError(t, err)
	first.HP = 1
	first.Name = "changed"

	second, err := svc.RandomEnemy()
	require.NoError(t, err)
	assert.Equal(t, "スライム", second.Name)
	assert.Equal(t, 20, second.HP)
	assert.Equal(t, reward.Enemies()[0], second)
}

func TestRandomEnemy_Boundaries(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1, 3})
	svc := reward.NewService(&reward.ServiceConfig{Roller: roller})

	low, err := svc.RandomEnemy()
	require.NoError(t, err)
	assert.Equal(t, "スライム", low.Name)

	high, err := svc.RandomEnemy()
	require.NoError(t, err)
	assert.Equal(t, "オーク", high.Name)

	_, err = svc.RandomEnemy()
	assert.Error(t, err, "roller exhausted")
}

func TestTreasure(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1, 2, 3})
	svc := reward.NewService(&reward.ServiceConfig{Roller: roller})

	var got []reward.TreasureType
	for i := 0; i < 3; i++ {
		treasure, err := svc.Treasure()
		require.NoError(t, err)
		got = append(got, treasure.Type)
	}

	assert.Equal(t, []reward.TreasureType{reward.TreasureKey, reward.TreasurePotion, reward.TreasureNothing}, got)
	assert.Equal(t, "宝箱は空でした...", reward.Treasures()[2].Message)
}

func TestTreasure_UniformWithCyclingRoller(t *testing.T) {
	svc := reward.NewService(&reward.ServiceConfig{
		Roller: mockdice.NewCyclingMockRoller(3, 1, 2),
	})

	counts := map[reward.TreasureType]int{}
	for i := 0; i < 999; i++ {
		treasure, err := svc.Treasure()
		require.NoError(t, err)
		counts[treasure.Type]++
	}

	assert.Equal(t, 333, counts[reward.TreasureKey])
	assert.Equal(t, 333, counts[reward.TreasurePotion])
	assert.Equal(t, 333, counts[reward.TreasureNothing])
}

func TestBattleRewards(t *testing.T) {
	orc := reward.Enemies()[2]

	roller := mockdice.NewManualMockRoller()
	// exp 15-25 is a d11, gold 15-25 is a d11
	roller.SetRolls([]int{1, 11})
	svc := reward.NewService(&reward.ServiceConfig{Roller: roller})

	rewards, err := svc.BattleRewards(orc)
	require.NoError(t, err)
	assert.Equal(t, reward.Rewards{Exp: 15, Gold: 25}, rewards)
}

func TestBattleRewards_RandomStaysInRange(t *testing.T) {
	svc := reward.NewService(nil)

	for _, enemy := range reward.Enemies() {
		for i := 0; i < 50; i++ {
			rewards, err := svc.BattleRewards(enemy)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rewards.Exp, enemy.ExpReward.Min)
			assert.LessOrEqual(t, rewards.Exp, enemy.ExpReward.Max)
			assert.GreaterOrEqual(t, rewards.Gold, enemy.GoldReward.Min)
			assert.LessOrEqual(t, rewards.Gold, enemy.GoldReward.Max)
		}
	}
}
