/*
Package main
File: main.go
Description: Game server entry point. Restores the voyage snapshot, runs the
simulation heartbeat, the autosave and leaderboard sync loops, the real-time
WebSocket hub, and the REST API the browser client talks to.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/everforgeworks/idle-space-adventure/internal/api"
	"github.com/everforgeworks/idle-space-adventure/internal/game"
	syncclient "github.com/everforgeworks/idle-space-adventure/internal/sync"
)

func main() {
	config := viper.New()
	config.AutomaticEnv()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := log.NewWithOptions(os.Stdout, log.Options{
		Level: log.InfoLevel,
	})

	if err := run(ctx, logger, config); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, logger *log.Logger, config *viper.Viper) error {
	config.SetDefault("PORT", 8081)
	config.SetDefault("BALANCE_PATH", "balance.yaml")
	config.SetDefault("SAVE_PATH", "data/savegame.json")
	config.SetDefault("PLAYER_ID", "local-player")
	config.SetDefault("PLAYER_NAME", "Captain")

	// 1. Load the static tuning tables
	bal, err := game.LoadBalance(config.GetString("BALANCE_PATH"))
	if err != nil {
		return fmt.Errorf("load balance: %w", err)
	}

	// 2. Restore the voyage (or start a fresh one)
	savePath := config.GetString("SAVE_PATH")
	state := game.LoadState(logger.WithPrefix("save"), bal, savePath, time.Now())
	logger.Info("voyage restored", "distance", state.Distance, "dark_matter", state.DarkMatter)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := game.NewEngine(logger.WithPrefix("engine"), bal, state, rng)

	// 3. Initialize and start the real-time WebSocket hub
	hub := api.NewHub(logger.WithPrefix("hub"))
	go hub.Run()

	// 4. THE SIMULATION HEARTBEAT
	// Advances the voyage every tick and pushes a state pulse once a second.
	go func() {
		ticker := time.NewTicker(bal.Tick())
		defer ticker.Stop()

		pulseEvery := int(time.Second / bal.Tick())
		if pulseEvery < 1 {
			pulseEvery = 1
		}

		ticks := 0
		lastEventID := ""
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				engine.Tick()
				ticks++

				if ev := engine.ActiveEvent(); ev != nil && ev.ID != lastEventID {
					lastEventID = ev.ID
					hub.BroadcastJSON("event_pulse", ev)
				}

				if ticks%pulseEvery == 0 {
					snapshot := engine.State()
					hub.BroadcastJSON("state_pulse", map[string]any{
						"distance":      snapshot.Distance,
						"darkMatter":    snapshot.DarkMatter,
						"boostActive":   snapshot.BoostActive,
						"effectiveShip": game.ApplyDamagePenalties(snapshot.Ship, snapshot.DamagedSystems),
					})
				}
			}
		}
	}()

	// 5. THE AUTOSAVE LOOP
	// Snapshots only settled state; the engine mutex guarantees a save never
	// observes a half-applied mutation.
	go func() {
		ticker := time.NewTicker(bal.Autosave())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := game.SaveState(engine.State(), savePath); err != nil {
					logger.Error("autosave failed", "err", err)
				}
			}
		}
	}()

	// 6. THE LEADERBOARD SYNC LOOP (only when a sync URL is configured)
	if syncURL := config.GetString("SYNC_URL"); syncURL != "" {
		client := syncclient.NewClient(
			logger.WithPrefix("sync"),
			syncURL,
			config.GetString("PLAYER_ID"),
			config.GetString("PLAYER_NAME"),
		)
		go func() {
			ticker := time.NewTicker(bal.Sync())
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := client.Push(ctx, engine.State()); err != nil {
						logger.Warn("leaderboard sync failed", "err", err)
					}
				}
			}
		}()
	}

	// 7. Setup router and start the server
	apiServer := api.NewServer(logger.WithPrefix("api"), engine, hub)

	port := config.GetInt("PORT")
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("net listen: %w", err)
	}

	httpServer := &http.Server{
		Handler:  api.CORSMiddleware(apiServer.Routes()),
		ErrorLog: logger.StandardLog(),
	}

	go func() {
		logger.Info("IDLE SPACE ADVENTURE server live", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	// Final save so a clean shutdown never loses more than the last tick.
	if err := game.SaveState(engine.State(), savePath); err != nil {
		logger.Error("final save failed", "err", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(closeCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
