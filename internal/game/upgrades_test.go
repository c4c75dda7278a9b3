package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShip() Ship {
	return NewInitialState(DefaultBalance(), time.Now()).Ship
}

func TestRecalculateStatsFormulas(t *testing.T) {
	bal := DefaultBalance()
	ship := testShip()

	// Level-1 parts everywhere: engines sum 2, hulls sum 2.
	got := RecalculateStats(bal, ship)
	assert.Equal(t, 120, got.Speed)            // floor(100 * 1.2)
	assert.Equal(t, 1300, got.StorageCapacity) // floor(1000 * 1.3)
	assert.Equal(t, 120, got.Durability)       // floor(100 * 1.2)
	assert.Equal(t, 5, got.Luck)               // floor(5 * 1.05)

	// Engine-left at level 2: sum 3.
	ship.Engine[0].Level = 2
	got = RecalculateStats(bal, ship)
	assert.Equal(t, 130, got.Speed) // floor(100 * 1.3)
}

func TestRecalculateStatsDeterministicAndIdempotent(t *testing.T) {
	bal := DefaultBalance()
	ship := testShip()
	ship.Engine[1].Level = 7
	ship.Hull[0].Level = 4
	ship.Cabin.Level = 9
	ship.Weapon.Level = 10

	once := RecalculateStats(bal, ship)
	twice := RecalculateStats(bal, once)
	assert.Equal(t, once, twice)

	again := RecalculateStats(bal, ship)
	assert.Equal(t, once, again)
}

func TestRecalculateStatsDoesNotMutateInput(t *testing.T) {
	bal := DefaultBalance()
	ship := testShip()
	ship.Speed = 1
	ship.StorageCapacity = 1

	_ = RecalculateStats(bal, ship)
	assert.Equal(t, 1, ship.Speed)
	assert.Equal(t, 1, ship.StorageCapacity)
}

func TestApplyDamagePenalties(t *testing.T) {
	bal := DefaultBalance()
	ship := RecalculateStats(bal, testShip()) // speed 120, storage 1300, durability 120, luck 5

	t.Run("no damage returns stats untouched", func(t *testing.T) {
		got := ApplyDamagePenalties(ship, nil)
		assert.Equal(t, ship, got)
	})

	t.Run("one engine down", func(t *testing.T) {
		got := ApplyDamagePenalties(ship, []string{"engine-left"})
		assert.Equal(t, 96, got.Speed) // floor(120 * 0.8)
		assert.Equal(t, ship.StorageCapacity, got.StorageCapacity)
	})

	t.Run("both engines compound", func(t *testing.T) {
		got := ApplyDamagePenalties(ship, []string{"engine-left", "engine-right"})
		assert.Equal(t, 76, got.Speed) // floor(floor(120*0.8) * 0.8)
	})

	t.Run("cabin and weapon", func(t *testing.T) {
		got := ApplyDamagePenalties(ship, []string{"cabin", "weapon"})
		assert.Equal(t, 84, got.Durability) // floor(120 * 0.7)
		assert.Equal(t, 3, got.Luck)        // floor(5 * 0.7)
	})

	t.Run("idempotent for a fixed damaged set", func(t *testing.T) {
		damaged := []string{"engine-left", "hull-upper", "cabin"}
		once := ApplyDamagePenalties(ship, damaged)
		twiceFromClean := ApplyDamagePenalties(ship, damaged)
		assert.Equal(t, once, twiceFromClean)
	})

	t.Run("levels and costs untouched", func(t *testing.T) {
		got := ApplyDamagePenalties(ship, []string{"engine-left", "weapon"})
		assert.Equal(t, ship.Engine, got.Engine)
		assert.Equal(t, ship.Weapon.Cost, got.Weapon.Cost)
		assert.Equal(t, ship.Weapon.Level, got.Weapon.Level)
	})
}

func TestApplyDamage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("adds exactly one intact system", func(t *testing.T) {
		damaged := ApplyDamage(nil, rng)
		require.Len(t, damaged, 1)
		assert.Contains(t, damageableSystems, damaged[0])
	})

	t.Run("never duplicates a damaged system", func(t *testing.T) {
		var damaged []string
		for i := 0; i < 6; i++ {
			damaged = ApplyDamage(damaged, rng)
		}
		require.Len(t, damaged, 6)
		seen := map[string]bool{}
		for _, d := range damaged {
			assert.False(t, seen[d], "system %q damaged twice", d)
			seen[d] = true
		}
	})

	t.Run("no-op when all six are down", func(t *testing.T) {
		all := append([]string(nil), damageableSystems...)
		got := ApplyDamage(all, rng)
		assert.Equal(t, all, got)
	})
}

func TestRepairCost(t *testing.T) {
	assert.Equal(t, 0, RepairCost(nil))
	assert.Equal(t, 100, RepairCost([]string{"cabin", "weapon"}))
}
