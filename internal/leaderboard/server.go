/*
Package leaderboard
File: server.go
Description:
    The HTTP surface of the leaderboard service: an echo router wrapped in a
    plain http.Server with sane timeouts. Routes:

      GET  /api/status      -> liveness + version + server time
      GET  /api/game/stats  -> the full stored document (short-TTL cached)
      POST /api/game/sync   -> player upsert, rate limited per client IP
*/

package leaderboard

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Version is reported by /api/status.
const Version = "1.0.0"

// NewServer assembles the service around a store.
func NewServer(logger *log.Logger, store *Store) *http.Server {
	e := echo.New()
	e.HideBanner = true

	server := &http.Server{
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       25 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          logger.StandardLog(),
	}

	registerRoutes(e, logger, store)

	return server
}

func registerRoutes(e *echo.Echo, logger *log.Logger, store *Store) {
	e.Use(middleware.CORS())

	// Reads of the full document dominate traffic once a leaderboard is on
	// screen somewhere; a short cache keeps file reads off the hot path.
	statsCache := gocache.New(5*time.Second, time.Minute)

	e.GET("/api/status", handleStatus())
	e.GET("/api/game/stats", handleGetStats(logger, store, statsCache))

	// Sync writes the whole file; 5 req/s per IP is generous for a 10 s
	// client cadence and stops a stuck client from hammering the disk.
	syncLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(5)),
	})
	e.POST("/api/game/sync", handlePostSync(logger, store, statsCache), syncLimiter)
}
