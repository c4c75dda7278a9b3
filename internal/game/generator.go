/*
Package game
File: generator.go
Description:
    The weighted random event generator. Draws a rarity tier by fixed
    cumulative thresholds, then a template uniformly within the tier, and
    instantiates a concrete GameEvent with a fresh id and timestamp.

    The only side effect is randomness consumption on the injected source.
*/

package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Tier thresholds over a [0,100) roll. Cumulative: 70% everyday, 20% rare,
// 8% cosmic, 2% easter egg. These are fixed by design, not tunable config.
const (
	tierRareThreshold      = 70.0
	tierCosmicThreshold    = 90.0
	tierEasterEggThreshold = 98.0
)

// Generator produces narrative events from the catalog.
// It holds its own random source so simulations and tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from the given source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// rollTier converts a uniform [0,100) roll into a tier name.
func rollTier(r float64) string {
	switch {
	case r < tierRareThreshold:
		return EventEveryday
	case r < tierCosmicThreshold:
		return EventRare
	case r < tierEasterEggThreshold:
		return EventCosmic
	default:
		return EventEasterEgg
	}
}

// Generate instantiates one event stamped at 'now'.
//
//  1. Draw the tier by the fixed weights.
//  2. Pick a template uniformly within the tier's pool.
//  3. Copy the template's options by value; resolving the event later must
//     never write through to the catalog.
func (g *Generator) Generate(now time.Time) GameEvent {
	tier := rollTier(g.rng.Float64() * 100)

	pool := poolForTier(tier)
	tpl := pool[g.rng.Intn(len(pool))]

	options := make([]EventOption, len(tpl.Options))
	copy(options, tpl.Options)

	return GameEvent{
		ID:            fmt.Sprintf("event-%d-%d", now.UnixMilli(), g.rng.Intn(1000)),
		Type:          tier,
		Title:         tpl.Title,
		Description:   tpl.Description,
		Options:       options,
		RequiresInput: true,
		Timestamp:     now.UnixMilli(),
		Resolved:      false,
	}
}
