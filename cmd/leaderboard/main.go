/*
Package main
File: main.go
Description: Leaderboard service entry point. Serves the high-score API over
a flat-file JSON store.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/everforgeworks/idle-space-adventure/internal/leaderboard"
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
	config.SetDefault("PORT", 3001)
	config.SetDefault("DATA_DIR", "data")

	store, err := leaderboard.NewStore(config.GetString("DATA_DIR"))
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	server := leaderboard.NewServer(logger, store)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GetInt("PORT")))
	if err != nil {
		return fmt.Errorf("net listen: %w", err)
	}

	go func() {
		logger.Info("leaderboard service live", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(closeCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
