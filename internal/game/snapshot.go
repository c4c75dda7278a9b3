/*
Package game
File: snapshot.go
Description:
    Persistence of the game state: a JSON snapshot on local disk, written on
    the autosave cadence and restored at boot. A missing, unreadable, or
    corrupt snapshot falls back to a fresh voyage rather than failing the
    process; losing a save is recoverable, refusing to boot is not.
*/

package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// NewInitialState builds the level-1 starting voyage: six fresh parts,
// derived stats computed from their levels, starting resource pools from the
// balance sheet, and an empty event log anchored at 'now'.
func NewInitialState(bal Balance, now time.Time) GameState {
	ship := Ship{
		Engine: []ShipPart{
			{
				ID: "engine-left", Name: "Left Engine",
				Level: 1, MaxLevel: 10, Cost: 150,
				Description: "Powers the left side of your ship",
				Effect:      "Increases speed by 10% per level",
			},
			{
				ID: "engine-right", Name: "Right Engine",
				Level: 1, MaxLevel: 10, Cost: 150,
				Description: "Powers the right side of your ship",
				Effect:      "Increases speed by 10% per level",
			},
		},
		Hull: []ShipPart{
			{
				ID: "hull-upper", Name: "Upper Hull",
				Level: 1, MaxLevel: 10, Cost: 200,
				Description: "Protects the top of your ship",
				Effect:      "Increases storage by 15% per level",
			},
			{
				ID: "hull-lower", Name: "Lower Hull",
				Level: 1, MaxLevel: 10, Cost: 200,
				Description: "Protects the bottom of your ship",
				Effect:      "Increases storage by 15% per level",
			},
		},
		Cabin: ShipPart{
			ID: "cabin", Name: "Pilot Cabin",
			Level: 1, MaxLevel: 10, Cost: 300,
			Description: "Where you live and control the ship",
			Effect:      "Increases durability by 20% per level",
		},
		Weapon: ShipPart{
			ID: "weapon", Name: "Defense System",
			Level: 1, MaxLevel: 10, Cost: 250,
			Description: "Your ship's defensive capabilities",
			Effect:      "Increases luck by 5% per level",
		},
	}
	ship = RecalculateStats(bal, ship)

	return GameState{
		Distance:       0,
		DarkMatter:     bal.StartDarkMatter,
		Ship:           ship,
		Events:         []GameEvent{},
		LastEventTime:  now.UnixMilli(),
		DamagedSystems: []string{},
		RepairPoints:   bal.StartRepairPts,
		BoostPoints:    bal.StartBoostPoints,
	}
}

// LoadState restores a snapshot from disk.
// Any failure (absent file, I/O error, bad JSON) logs the reason and returns
// a fresh initial state; a broken save never prevents the voyage from
// continuing.
func LoadState(logger *log.Logger, bal Balance, path string, now time.Time) GameState {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("snapshot unreadable, starting fresh", "path", path, "err", err)
		}
		return NewInitialState(bal, now)
	}

	var state GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn("snapshot corrupt, starting fresh", "path", path, "err", err)
		return NewInitialState(bal, now)
	}

	// A snapshot missing its ship entirely predates the current format.
	if len(state.Ship.Engine) == 0 || len(state.Ship.Hull) == 0 {
		logger.Warn("snapshot has no ship, starting fresh", "path", path)
		return NewInitialState(bal, now)
	}

	// Derived stats are recomputed on load so a hand-edited or stale save
	// can never smuggle in values inconsistent with its part levels.
	state.Ship = RecalculateStats(bal, state.Ship)
	return state
}

// SaveState writes the snapshot atomically: temp file then rename, so a
// crash mid-write leaves the previous save intact.
func SaveState(state GameState, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
