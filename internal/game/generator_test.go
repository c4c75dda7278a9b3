package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollTierThresholds(t *testing.T) {
	assert.Equal(t, EventEveryday, rollTier(0))
	assert.Equal(t, EventEveryday, rollTier(69.999))
	assert.Equal(t, EventRare, rollTier(70))
	assert.Equal(t, EventRare, rollTier(89.999))
	assert.Equal(t, EventCosmic, rollTier(90))
	assert.Equal(t, EventCosmic, rollTier(97.999))
	assert.Equal(t, EventEasterEgg, rollTier(98))
	assert.Equal(t, EventEasterEgg, rollTier(99.999))
}

func TestGenerateTierDistribution(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))
	now := time.Now()

	const n = 10_000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[gen.Generate(now).Type]++
	}

	// Expected 70/20/8/2 percent, with sampling tolerance.
	assert.InDelta(t, 0.70, float64(counts[EventEveryday])/n, 0.03)
	assert.InDelta(t, 0.20, float64(counts[EventRare])/n, 0.03)
	assert.InDelta(t, 0.08, float64(counts[EventCosmic])/n, 0.02)
	assert.InDelta(t, 0.02, float64(counts[EventEasterEgg])/n, 0.01)
}

func TestGenerateCoversEveryTemplateInTier(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	now := time.Now()

	titles := map[string]map[string]bool{}
	for i := 0; i < 5_000; i++ {
		ev := gen.Generate(now)
		if titles[ev.Type] == nil {
			titles[ev.Type] = map[string]bool{}
		}
		titles[ev.Type][ev.Title] = true
	}

	// Every template of every tier should show up well within 5k draws.
	assert.Len(t, titles[EventEveryday], len(everydayEvents))
	assert.Len(t, titles[EventRare], len(rareEvents))
	assert.Len(t, titles[EventCosmic], len(cosmicEvents))
	assert.Len(t, titles[EventEasterEgg], len(easterEggEvents))
}

func TestGenerateInstantiation(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(9)))
	now := time.Now()

	ev := gen.Generate(now)
	assert.True(t, ev.RequiresInput)
	assert.False(t, ev.Resolved)
	assert.Empty(t, ev.Outcome)
	assert.Equal(t, now.UnixMilli(), ev.Timestamp)
	assert.Regexp(t, `^event-\d+-\d+$`, ev.ID)
	require.NotEmpty(t, ev.Options)
}

func TestGenerateCopiesOptionsByValue(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(3)))
	ev := gen.Generate(time.Now())

	// Find the template this instance came from.
	var tpl *EventTemplate
	for i, candidate := range poolForTier(ev.Type) {
		if candidate.Title == ev.Title {
			tpl = &poolForTier(ev.Type)[i]
			break
		}
	}
	require.NotNil(t, tpl)

	original := tpl.Options[0].DarkMatterReward
	ev.Options[0].DarkMatterReward = original + 99_999

	assert.Equal(t, original, tpl.Options[0].DarkMatterReward,
		"mutating an instance must never write through to the catalog")
}
