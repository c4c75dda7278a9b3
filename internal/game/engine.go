/*
Package game
File: engine.go
Description:
    The simulation engine: exclusive owner of the GameState aggregate.
    Every operation (tick, player action, upgrade purchase, damage roll)
    runs under one mutex, so no two mutations ever observe the same
    pre-state and snapshot reads only see settled state.

    The implicit state machine is {normal, boosting, event-pending};
    boosting and event-pending are orthogonal flags and can hold at once.
*/

package game

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Button indices accepted by SubmitAction. Outside an event, 0 boosts and
// 1 repairs; while an event is pending, 2 accepts and 3 declines. All other
// combinations are no-ops.
const (
	ButtonBoost   = 0
	ButtonRepair  = 1
	ButtonAccept  = 2
	ButtonDecline = 3
)

// Engine owns the canonical game state and serializes all mutations.
type Engine struct {
	mu      sync.Mutex
	state   GameState
	pending *GameEvent // The single event awaiting a response, nil otherwise

	bal    Balance
	gen    *Generator
	rng    *rand.Rand
	logger *log.Logger

	// clock is swapped for a fake in tests; everything time-dependent inside
	// the engine reads through it.
	clock func() time.Time
}

// NewEngine wraps an initial state. The rng feeds both the event generator
// and damage rolls.
func NewEngine(logger *log.Logger, bal Balance, state GameState, rng *rand.Rand) *Engine {
	return &Engine{
		state:  state,
		bal:    bal,
		gen:    NewGenerator(rng),
		rng:    rng,
		logger: logger,
		clock:  time.Now,
	}
}

// State returns a deep-copy snapshot of the canonical state.
// Safe to serialize or hand to any other goroutine.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// ActiveEvent returns a copy of the event currently awaiting a response,
// or nil when the voyage is uneventful.
func (e *Engine) ActiveEvent() *GameEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return nil
	}
	ev := e.pending.Clone()
	return &ev
}

// EffectiveShip returns the ship with damage penalties multiplied into the
// derived stats. This is the read-time view for display and telemetry; the
// stored stats stay clean so repairs restore them exactly.
func (e *Engine) EffectiveShip() Ship {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ApplyDamagePenalties(e.state.Ship, e.state.DamagedSystems)
}

// Tick advances the simulation by one fixed period.
//
//  1. Resolve the effective speed. A boost past its end time is expired and
//     the remainder of the tick is skipped: the last tick after expiry gets
//     neither the boosted nor the base distance.
//  2. distance += speed/10 (speed is per second, the tick is 100 ms).
//  3. Passive Dark Matter collection, clamped to storage capacity.
//  4. Generate a new event once per event interval. A generated event that
//     requires input becomes the pending event unconditionally, even when an
//     unresolved one is still waiting.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	nowMs := now.UnixMilli()

	currentSpeed := float64(e.state.Ship.Speed)
	if e.state.BoostActive {
		if nowMs < e.state.BoostEndTime {
			currentSpeed *= 2
		} else {
			// Expire-then-skip: the boost flag clears and this tick ends here.
			e.state.BoostActive = false
			return
		}
	}

	e.state.Distance += currentSpeed / 10
	e.state.DarkMatter = math.Min(e.state.DarkMatter+0.1, float64(e.state.Ship.StorageCapacity))

	if nowMs-e.state.LastEventTime >= e.bal.EventIntervalMs {
		ev := e.gen.Generate(now)
		e.state.Events = append(e.state.Events, ev)
		e.state.LastEventTime = nowMs

		if ev.RequiresInput {
			if e.pending != nil {
				// The superseded event stays unresolved in the log forever.
				e.logger.Warn("pending event superseded before resolution",
					"superseded", e.pending.ID, "new", ev.ID)
			}
			pendingCopy := ev.Clone()
			e.pending = &pendingCopy
		}

		e.logger.Debug("event generated", "id", ev.ID, "type", ev.Type, "title", ev.Title)
	}
}

// SubmitAction maps a discrete button press onto the current context.
// Invalid combinations and unaffordable actions are silent no-ops; the
// caller can inspect the state to learn why nothing changed.
func (e *Engine) SubmitAction(buttonIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending != nil {
		switch buttonIndex {
		case ButtonAccept:
			e.resolvePending(OutcomeAccepted)
		case ButtonDecline:
			e.resolvePending(OutcomeDeclined)
		}
		return
	}

	switch buttonIndex {
	case ButtonBoost:
		e.activateBoost()
	case ButtonRepair:
		e.repairOneSystem()
	}
}

// activateBoost starts a speed-doubling boost when a point is available and
// no boost is already running. Caller holds the lock.
func (e *Engine) activateBoost() {
	if e.state.BoostPoints <= 0 || e.state.BoostActive {
		return
	}
	e.state.BoostActive = true
	e.state.BoostEndTime = e.clock().UnixMilli() + e.bal.BoostDurationMs
	e.state.BoostPoints--
	e.logger.Info("boost engaged", "ends_in_ms", e.bal.BoostDurationMs, "points_left", e.state.BoostPoints)
}

// repairOneSystem removes the most-recently-damaged system and spends one
// repair point. Caller holds the lock.
func (e *Engine) repairOneSystem() {
	if e.state.RepairPoints <= 0 || len(e.state.DamagedSystems) == 0 {
		return
	}
	repaired := e.state.DamagedSystems[len(e.state.DamagedSystems)-1]
	e.state.DamagedSystems = e.state.DamagedSystems[:len(e.state.DamagedSystems)-1]
	e.state.RepairPoints--
	e.logger.Info("system repaired", "system", repaired, "points_left", e.state.RepairPoints)
}

// resolvePending stamps the pending event with its outcome and replaces its
// entry in the log. Accepting applies option 0's rewards; the Dark Matter
// reward is deliberately NOT clamped to storage capacity here (only the
// passive tick clamps), matching the snapshot format's established behavior.
// Declining applies nothing. Caller holds the lock.
func (e *Engine) resolvePending(outcome string) {
	ev := e.pending
	ev.Resolved = true
	ev.Outcome = outcome

	if outcome == OutcomeAccepted && len(ev.Options) > 0 {
		e.state.DarkMatter += ev.Options[0].DarkMatterReward
		e.state.Distance += ev.Options[0].DistanceEffect
	}

	for i := range e.state.Events {
		if e.state.Events[i].ID == ev.ID {
			e.state.Events[i] = ev.Clone()
			break
		}
	}

	e.logger.Info("event resolved", "id", ev.ID, "outcome", outcome)
	e.pending = nil
}

// SubmitUpgrade purchases the next level of the identified part.
// Fails silently (no state change) when the part is unknown, already at its
// max level, or the player cannot afford it. On success the old cost is
// deducted, the price grows by x1.5 (floored), and every derived stat is
// recomputed from the clean part levels; damage penalties are never folded
// into the stored stats.
func (e *Engine) SubmitUpgrade(partID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	part := e.findPart(partID)
	if part == nil {
		return
	}
	if part.Level >= part.MaxLevel {
		return
	}
	if e.state.DarkMatter < float64(part.Cost) {
		return
	}

	oldCost := part.Cost
	part.Level++
	part.Cost = int(math.Floor(float64(part.Cost) * 1.5))
	e.state.DarkMatter -= float64(oldCost)

	e.state.Ship = RecalculateStats(e.bal, e.state.Ship)

	e.logger.Info("part upgraded", "part", partID, "level", part.Level, "next_cost", part.Cost)
}

// findPart locates a part pointer across the four categories: the engine and
// hull arrays are searched, cabin and weapon match directly. Caller holds the
// lock; the pointer is only valid while it is held.
func (e *Engine) findPart(partID string) *ShipPart {
	for i := range e.state.Ship.Engine {
		if e.state.Ship.Engine[i].ID == partID {
			return &e.state.Ship.Engine[i]
		}
	}
	for i := range e.state.Ship.Hull {
		if e.state.Ship.Hull[i].ID == partID {
			return &e.state.Ship.Hull[i]
		}
	}
	if e.state.Ship.Cabin.ID == partID {
		return &e.state.Ship.Cabin
	}
	if e.state.Ship.Weapon.ID == partID {
		return &e.state.Ship.Weapon
	}
	return nil
}

// DamageRandomSystem flags one intact system as damaged. No-op when all six
// are already down. Exposed for event fallout and the maintenance API.
func (e *Engine) DamageRandomSystem() {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := len(e.state.DamagedSystems)
	e.state.DamagedSystems = ApplyDamage(e.state.DamagedSystems, e.rng)
	if len(e.state.DamagedSystems) > before {
		e.logger.Info("system damaged", "system", e.state.DamagedSystems[len(e.state.DamagedSystems)-1])
	}
}

// Balance returns the tuning set the engine was built with.
func (e *Engine) Balance() Balance {
	return e.bal
}
