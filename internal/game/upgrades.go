/*
Package game
File: upgrades.go
Description:
    The ship stat calculator: pure functions deriving the four scalar stats
    from part levels, plus the damage subsystem (random damage application,
    multiplicative stat penalties, repair cost estimation).

    None of these functions touch the Engine or its lock; they take values
    and return values. That keeps them trivially testable and guarantees the
    derived stats can never be incrementally adjusted into drift.
*/

package game

import (
	"math"
	"math/rand"
	"strings"
)

// The fixed set of damageable system ids.
var damageableSystems = []string{
	"engine-left",
	"engine-right",
	"hull-upper",
	"hull-lower",
	"cabin",
	"weapon",
}

// Per-system repair fee, in Dark Matter.
const repairCostPerSystem = 50

// RecalculateStats derives the four scalar stats from part levels.
// All four are fully recomputed on every call:
//
//	speed      = floor(BASE_SPEED      * (1 + 0.10 * sum(engine levels)))
//	storage    = floor(BASE_STORAGE    * (1 + 0.15 * sum(hull levels)))
//	durability = floor(BASE_DURABILITY * (1 + 0.20 * cabin level))
//	luck       = floor(BASE_LUCK       * (1 + 0.05 * weapon level))
//
// The input ship is not modified.
func RecalculateStats(bal Balance, ship Ship) Ship {
	out := ship.Clone()

	engineLevels := 0
	for _, p := range ship.Engine {
		engineLevels += p.Level
	}
	out.Speed = int(math.Floor(float64(bal.BaseSpeed) * (1 + 0.10*float64(engineLevels))))

	hullLevels := 0
	for _, p := range ship.Hull {
		hullLevels += p.Level
	}
	out.StorageCapacity = int(math.Floor(float64(bal.BaseStorage) * (1 + 0.15*float64(hullLevels))))

	out.Durability = int(math.Floor(float64(bal.BaseDurability) * (1 + 0.20*float64(ship.Cabin.Level))))
	out.Luck = int(math.Floor(float64(bal.BaseLuck) * (1 + 0.05*float64(ship.Weapon.Level))))

	return out
}

// ApplyDamagePenalties returns a view of the ship with the damaged-system
// penalties multiplied into the already-computed stats:
//
//	engine-* -> x0.8 speed     hull-* -> x0.8 storage
//	cabin    -> x0.7 durability weapon -> x0.7 luck
//
// Penalties compound when both parts of a category are damaged (two engines
// down means two x0.8 applications). The function is idempotent for a fixed
// damaged set and never touches part levels or costs; the canonical stored
// stats stay clean and penalties are applied at read time.
func ApplyDamagePenalties(ship Ship, damagedSystems []string) Ship {
	if len(damagedSystems) == 0 {
		return ship
	}

	out := ship.Clone()
	for _, system := range damagedSystems {
		switch {
		case strings.HasPrefix(system, "engine"):
			out.Speed = int(math.Floor(float64(out.Speed) * 0.8))
		case strings.HasPrefix(system, "hull"):
			out.StorageCapacity = int(math.Floor(float64(out.StorageCapacity) * 0.8))
		case system == "cabin":
			out.Durability = int(math.Floor(float64(out.Durability) * 0.7))
		case system == "weapon":
			out.Luck = int(math.Floor(float64(out.Luck) * 0.7))
		}
	}
	return out
}

// ApplyDamage picks one not-yet-damaged system uniformly at random and
// returns the extended damaged list. When all six systems are already down
// the input list is returned unchanged.
func ApplyDamage(damagedSystems []string, rng *rand.Rand) []string {
	available := make([]string, 0, len(damageableSystems))
	for _, system := range damageableSystems {
		damaged := false
		for _, d := range damagedSystems {
			if d == system {
				damaged = true
				break
			}
		}
		if !damaged {
			available = append(available, system)
		}
	}

	if len(available) == 0 {
		return damagedSystems
	}

	out := make([]string, len(damagedSystems), len(damagedSystems)+1)
	copy(out, damagedSystems)
	return append(out, available[rng.Intn(len(available))])
}

// RepairCost quotes the Dark Matter fee to fix everything currently damaged.
// Advisory for the UI; the repair action itself spends repair points, not
// Dark Matter.
func RepairCost(damagedSystems []string) int {
	return len(damagedSystems) * repairCostPerSystem
}
