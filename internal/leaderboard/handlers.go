/*
Package leaderboard
File: handlers.go
Description:
    Echo handlers for the leaderboard service. Missing identity fields are a
    400, storage failures are a 500, and the in-memory state of the game
    servers is never affected by either.
*/

package leaderboard

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

const statsCacheKey = "stats"

// StatusResponse is the /api/status body.
type StatusResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	ServerTime string `json:"serverTime"` // RFC 3339
}

// SyncResponse acknowledges an upsert with the top 10 for display.
type SyncResponse struct {
	Success     bool    `json:"success"`
	Leaderboard []Entry `json:"leaderboard"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func handleStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, StatusResponse{
			Status:     "online",
			Version:    Version,
			ServerTime: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func handleGetStats(logger *log.Logger, store *Store, cache *gocache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cached, ok := cache.Get(statsCacheKey); ok {
			return c.JSON(http.StatusOK, cached.(Stats))
		}

		stats, err := store.Load()
		if err != nil {
			logger.Error("read stats", "err", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read game stats"})
		}

		cache.SetDefault(statsCacheKey, stats)
		return c.JSON(http.StatusOK, stats)
	}
}

func handlePostSync(logger *log.Logger, store *Store, cache *gocache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req SyncRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.PlayerID == "" || req.PlayerName == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Player ID and name are required"})
		}

		stats, err := store.Sync(req)
		if err != nil {
			logger.Error("sync player", "player", req.PlayerID, "err", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update player stats"})
		}

		// The document changed; the read cache is stale.
		cache.Delete(statsCacheKey)

		top := stats.Leaderboard
		if len(top) > 10 {
			top = top[:10]
		}
		return c.JSON(http.StatusOK, SyncResponse{Success: true, Leaderboard: top})
	}
}
