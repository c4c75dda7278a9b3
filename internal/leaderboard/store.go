/*
Package leaderboard
File: store.go
Description:
    Flat-file JSON storage for per-player high scores. One file holds every
    player record plus the precomputed top-100 leaderboard; every sync is a
    read-modify-write of the whole file under one mutex. The file IS the
    database.
*/

package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// PlayerRecord is one player's synced progress.
type PlayerRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Distance          float64  `json:"distance"`
	DarkMatter        float64  `json:"darkMatter"`
	LastSync          string   `json:"lastSync"` // RFC 3339
	SignificantEvents []string `json:"significantEvents"`
}

// Entry is one leaderboard row: rank plus the display fields.
type Entry struct {
	Rank     int     `json:"rank"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// Stats is the full stored document.
type Stats struct {
	Players     []PlayerRecord `json:"players"`
	Leaderboard []Entry        `json:"leaderboard"`
	LastUpdated string         `json:"lastUpdated"` // RFC 3339
}

// SyncRequest is the payload a game server pushes on its sync cadence.
type SyncRequest struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Distance   float64  `json:"distance"`
	DarkMatter float64  `json:"darkMatter"`
	Events     []string `json:"events"`
}

// Store owns the stats file. The mutex serializes every read-modify-write,
// so two concurrent syncs can never interleave on the same pre-state.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore prepares the data directory and seeds an empty stats file when
// none exists yet.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		path: filepath.Join(dataDir, "game_stats.json"),
		now:  time.Now,
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		empty := Stats{
			Players:     []PlayerRecord{},
			Leaderboard: []Entry{},
			LastUpdated: s.now().UTC().Format(time.RFC3339),
		}
		if err := s.write(empty); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Load reads and decodes the full stats document.
func (s *Store) Load() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Stats, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Stats{}, fmt.Errorf("read stats file: %w", err)
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return Stats{}, fmt.Errorf("parse stats file: %w", err)
	}
	return stats, nil
}

// Sync upserts a player record keyed by PlayerID, recomputes the top-100
// leaderboard, and persists. A zero Distance/DarkMatter on an existing
// player keeps the stored value, so partial syncs never wipe progress.
// Returns the updated document.
func (s *Store) Sync(req SyncRequest) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.load()
	if err != nil {
		return Stats{}, err
	}

	syncedAt := s.now().UTC().Format(time.RFC3339)

	idx := -1
	for i, p := range stats.Players {
		if p.ID == req.PlayerID {
			idx = i
			break
		}
	}

	if idx == -1 {
		stats.Players = append(stats.Players, PlayerRecord{
			ID:                req.PlayerID,
			Name:              req.PlayerName,
			Distance:          req.Distance,
			DarkMatter:        req.DarkMatter,
			LastSync:          syncedAt,
			SignificantEvents: orEmpty(req.Events),
		})
	} else {
		p := &stats.Players[idx]
		p.Name = req.PlayerName
		if req.Distance != 0 {
			p.Distance = req.Distance
		}
		if req.DarkMatter != 0 {
			p.DarkMatter = req.DarkMatter
		}
		if len(req.Events) > 0 {
			p.SignificantEvents = req.Events
		}
		p.LastSync = syncedAt
	}

	stats.Leaderboard = computeLeaderboard(stats.Players)
	stats.LastUpdated = syncedAt

	if err := s.write(stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// computeLeaderboard ranks players by distance descending, top 100.
// The sort is stable so ties keep their insertion order.
func computeLeaderboard(players []PlayerRecord) []Entry {
	ranked := make([]PlayerRecord, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance > ranked[j].Distance
	})

	if len(ranked) > 100 {
		ranked = ranked[:100]
	}

	board := make([]Entry, len(ranked))
	for i, p := range ranked {
		board[i] = Entry{Rank: i + 1, ID: p.ID, Name: p.Name, Distance: p.Distance}
	}
	return board
}

// write persists the document with a temp-file-and-rename so a crash
// mid-write cannot truncate the only copy of the data.
func (s *Store) write(stats Stats) error {
	raw, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit stats file: %w", err)
	}
	return nil
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
