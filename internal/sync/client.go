/*
Package sync
File: client.go
Description:
    The leaderboard sync client. On its cadence the game server pushes the
    player's distance, Dark Matter, and resolved-event summaries to the
    leaderboard service. Failures are logged and dropped; the voyage never
    depends on the scoreboard being reachable.
*/

package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/everforgeworks/idle-space-adventure/internal/game"
)

// Payload mirrors the leaderboard service's sync request body.
type Payload struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Distance   float64  `json:"distance"`
	DarkMatter float64  `json:"darkMatter"`
	Events     []string `json:"events"`
}

// Client posts progress snapshots to one leaderboard endpoint.
type Client struct {
	endpoint   string // Full URL of the sync route
	playerID   string
	playerName string

	http   *http.Client
	logger *log.Logger
}

// NewClient configures a sync client for one player identity.
func NewClient(logger *log.Logger, endpoint, playerID, playerName string) *Client {
	return &Client{
		endpoint:   endpoint,
		playerID:   playerID,
		playerName: playerName,
		http:       &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Push sends the snapshot's score fields. Only resolved events are reported;
// an event the player never answered is not a story worth telling.
func (c *Client) Push(ctx context.Context, state game.GameState) error {
	events := make([]string, 0, len(state.Events))
	for _, ev := range state.Events {
		if ev.Resolved {
			events = append(events, fmt.Sprintf("%s: %s (%s)", ev.Type, ev.Title, ev.Outcome))
		}
	}

	body, err := json.Marshal(Payload{
		PlayerID:   c.playerID,
		PlayerName: c.playerName,
		Distance:   state.Distance,
		DarkMatter: state.DarkMatter,
		Events:     events,
	})
	if err != nil {
		return fmt.Errorf("encode sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post sync: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync rejected: %s", resp.Status)
	}

	c.logger.Debug("progress synced", "distance", state.Distance)
	return nil
}
