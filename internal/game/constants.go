/*
Package game
File: constants.go
Description:
    Static tuning tables for the voyage: base ship stats, timing intervals,
    and the milestone distance table. Values are loaded from 'balance.yaml'
    in the same way the rest of our servers load their universe files, with
    compiled-in defaults when the file is absent so a bare checkout still runs.

    The tier weights of the event generator are NOT configurable; they live in
    generator.go because they define the game's pacing and must not drift.
*/

package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Balance stores the global tuning variables.
// Intervals are expressed in milliseconds to stay aligned with the
// Date.now()-based timestamps in the snapshot format.
type Balance struct {
	BaseSpeed      int `yaml:"base_speed" json:"base_speed"`           // Miles per second at level 0 bonus
	BaseStorage    int `yaml:"base_storage" json:"base_storage"`       // Dark Matter units
	BaseDurability int `yaml:"base_durability" json:"base_durability"` //
	BaseLuck       int `yaml:"base_luck" json:"base_luck"`             // Percentage

	TickMs          int64 `yaml:"tick_ms" json:"tick_ms"`                     // Simulation period
	EventIntervalMs int64 `yaml:"event_interval_ms" json:"event_interval_ms"` // Time between narrative events
	BoostDurationMs int64 `yaml:"boost_duration_ms" json:"boost_duration_ms"` // Boost lifetime
	AutosaveMs      int64 `yaml:"autosave_ms" json:"autosave_ms"`             // Snapshot cadence
	SyncMs          int64 `yaml:"sync_ms" json:"sync_ms"`                     // Leaderboard push cadence

	StartDarkMatter  float64 `yaml:"start_dark_matter" json:"start_dark_matter"`
	StartBoostPoints int     `yaml:"start_boost_points" json:"start_boost_points"`
	StartRepairPts   int     `yaml:"start_repair_points" json:"start_repair_points"`

	Milestones []Milestone `yaml:"milestones" json:"milestones"`
}

// Milestone is a named distance marker on the way out of the solar system.
type Milestone struct {
	Key      string  `yaml:"key" json:"key"`
	Name     string  `yaml:"name" json:"name"`
	Distance float64 `yaml:"distance" json:"distance"` // Miles from Earth
}

// Duration helpers so callers deal in time.Duration, not raw milliseconds.

func (b Balance) Tick() time.Duration          { return time.Duration(b.TickMs) * time.Millisecond }
func (b Balance) EventInterval() time.Duration { return time.Duration(b.EventIntervalMs) * time.Millisecond }
func (b Balance) BoostDuration() time.Duration { return time.Duration(b.BoostDurationMs) * time.Millisecond }
func (b Balance) Autosave() time.Duration      { return time.Duration(b.AutosaveMs) * time.Millisecond }
func (b Balance) Sync() time.Duration          { return time.Duration(b.SyncMs) * time.Millisecond }

// DefaultBalance returns the shipped tuning set.
// These constants are balance-critical; change them and the pacing of every
// saved voyage changes with them.
func DefaultBalance() Balance {
	return Balance{
		BaseSpeed:      100,
		BaseStorage:    1000,
		BaseDurability: 100,
		BaseLuck:       5,

		TickMs:          100,
		EventIntervalMs: 600_000, // 10 minutes
		BoostDurationMs: 30_000,  // 30 seconds
		AutosaveMs:      10_000,
		SyncMs:          60_000,

		StartDarkMatter:  100,
		StartBoostPoints: 5,
		StartRepairPts:   3,

		Milestones: []Milestone{
			{Key: "moon", Name: "The Moon", Distance: 238_900},
			{Key: "mars", Name: "Mars", Distance: 140_000_000},
			{Key: "jupiter", Name: "Jupiter", Distance: 365_000_000},
			{Key: "saturn", Name: "Saturn", Distance: 746_000_000},
			{Key: "uranus", Name: "Uranus", Distance: 1_600_000_000},
			{Key: "neptune", Name: "Neptune", Distance: 2_700_000_000},
			{Key: "pluto", Name: "Pluto", Distance: 3_100_000_000},
			{Key: "interstellar", Name: "Interstellar Space", Distance: 9_461_000_000_000}, // 1 light year
		},
	}
}

// LoadBalance reads the tuning file at path.
// A missing file is not an error: the compiled-in defaults are returned so
// development setups work without any on-disk configuration. A present but
// malformed file IS an error, because silently ignoring a half-edited tuning
// file would be worse than refusing to boot.
func LoadBalance(path string) (Balance, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBalance(), nil
		}
		return Balance{}, fmt.Errorf("read balance file: %w", err)
	}

	bal := DefaultBalance()
	if err := yaml.Unmarshal(f, &bal); err != nil {
		return Balance{}, fmt.Errorf("parse balance file: %w", err)
	}
	return bal, nil
}

// MilestoneProgress reports the last milestone passed (nil before the Moon)
// and the next one ahead (nil past Interstellar Space) for a given distance.
// Milestones are assumed sorted ascending, as DefaultBalance defines them.
func (b Balance) MilestoneProgress(distance float64) (current, next *Milestone) {
	for i := range b.Milestones {
		m := &b.Milestones[i]
		if distance >= m.Distance {
			current = m
		} else {
			next = m
			break
		}
	}
	return current, next
}
