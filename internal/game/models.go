/*
Package game
File: models.go
Description:
    Defines all data structures (Structs) used by the idle voyage simulation.
    This file serves as the "schema" for the application: the structs map
    directly to the JSON snapshot format consumed by the browser client and
    the persistence layer.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

// Event rarity tiers. The generator draws these with fixed weights (70/20/8/2),
// which define the game's pacing.
const (
	EventEveryday  = "everyday"
	EventRare      = "rare"
	EventCosmic    = "cosmic"
	EventEasterEgg = "easter_egg"
)

// Event outcomes, set exactly once when the player answers.
const (
	OutcomeAccepted = "accepted"
	OutcomeDeclined = "declined"
)

// ShipPart represents one upgradeable component of the ship.
type ShipPart struct {
	ID          string `json:"id"`          // Unique ID (e.g., "engine-left")
	Name        string `json:"name"`        // Display name
	Level       int    `json:"level"`       // Current level, 1..MaxLevel
	MaxLevel    int    `json:"maxLevel"`    // Upgrade ceiling
	Cost        int    `json:"cost"`        // Dark Matter price of the NEXT upgrade
	Description string `json:"description"` // Flavor text
	Effect      string `json:"effect"`      // Human-readable stat effect
}

// Ship aggregates the six upgradeable parts plus four derived stats.
// The derived stats are never set directly; they are always recomputed from
// part levels via RecalculateStats so the stored values cannot drift.
type Ship struct {
	Engine []ShipPart `json:"engine"` // Two parts: engine-left, engine-right
	Hull   []ShipPart `json:"hull"`   // Two parts: hull-upper, hull-lower
	Cabin  ShipPart   `json:"cabin"`
	Weapon ShipPart   `json:"weapon"`

	// Derived stats (see upgrades.go)
	Speed           int `json:"speed"`           // Miles per second
	StorageCapacity int `json:"storageCapacity"` // Dark Matter units
	Durability      int `json:"durability"`
	Luck            int `json:"luck"` // Percentage
}

// EventOption is one of the (up to two) choices offered by a narrative event.
type EventOption struct {
	Text             string  `json:"text"`
	Effect           string  `json:"effect"`
	SuccessRate      int     `json:"successRate"` // Advisory only; resolution does not roll against it
	DarkMatterReward float64 `json:"darkMatterReward"`
	DistanceEffect   float64 `json:"distanceEffect"`
	PartReward       string  `json:"partReward,omitempty"`
}

// GameEvent is a concrete instance of a catalog template, appended to the
// event log when the event interval elapses. Immutable after creation except
// for Resolved/Outcome, which are set exactly once when the player answers.
type GameEvent struct {
	ID            string        `json:"id"`   // "event-<unixms>-<rand>"
	Type          string        `json:"type"` // One of the tier constants above
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Options       []EventOption `json:"options"`
	RequiresInput bool          `json:"requiresInput"`
	Timestamp     int64         `json:"timestamp"` // Unix milliseconds
	Resolved      bool          `json:"resolved"`
	Outcome       string        `json:"outcome,omitempty"`
}

// GameState is the root aggregate. It is owned exclusively by the Engine,
// which serializes all mutations; everything else sees deep copies.
type GameState struct {
	Distance   float64 `json:"distance"`   // Miles travelled
	DarkMatter float64 `json:"darkMatter"` // Spendable resource, clamped to storage on passive ticks

	Ship Ship `json:"ship"`

	Events        []GameEvent `json:"events"`        // Append-only log, resolved or not
	LastEventTime int64       `json:"lastEventTime"` // Unix ms of the last generation

	BoostActive  bool  `json:"boostActive"`
	BoostEndTime int64 `json:"boostEndTime"` // Unix ms

	DamagedSystems []string `json:"damagedSystems"` // Part IDs currently impaired
	RepairPoints   int      `json:"repairPoints"`
	BoostPoints    int      `json:"boostPoints"`
}

// Clone returns a deep copy of the event, including its options slice.
func (ev GameEvent) Clone() GameEvent {
	out := ev
	out.Options = make([]EventOption, len(ev.Options))
	copy(out.Options, ev.Options)
	return out
}

// Clone returns a deep copy of the ship.
func (s Ship) Clone() Ship {
	out := s
	out.Engine = make([]ShipPart, len(s.Engine))
	copy(out.Engine, s.Engine)
	out.Hull = make([]ShipPart, len(s.Hull))
	copy(out.Hull, s.Hull)
	return out
}

// Clone returns a deep copy of the full game state.
func (g GameState) Clone() GameState {
	out := g
	out.Ship = g.Ship.Clone()
	out.Events = make([]GameEvent, len(g.Events))
	for i, ev := range g.Events {
		out.Events[i] = ev.Clone()
	}
	out.DamagedSystems = make([]string, len(g.DamagedSystems))
	copy(out.DamagedSystems, g.DamagedSystems)
	return out
}
