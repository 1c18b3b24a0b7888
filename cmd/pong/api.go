package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/api"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagAPIAddr string
	flagEnvFile string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP persistence API",
	Long: `Serve users, matches and stats over HTTP.

Endpoints:
  GET    /health
  POST   /matches               save a finished match
  GET    /matches[?user_id=&limit=]
  GET    /matches/{id}
  GET    /users[?nick=]
  POST   /users                 {"nick": "...", "avatar": "..."}
  GET    /users/{id}
  DELETE /users/{id}
  GET    /stats
  GET    /stats/{userID}
  POST   /stats/{userID}        overwrite a stats row
  DELETE /stats/{userID}        reset a stats row

Configuration comes from the environment, after loading --env-file:
  PONG_API_ADDR             listen address (default :8080)
  PONG_DB                   database path (default ~/.pong/pong.db)
  PONG_CORS_ORIGINS         comma-separated allowed origins (default *)
  PONG_API_READ_TIMEOUT     e.g. 15s
  PONG_API_WRITE_TIMEOUT    e.g. 15s
  PONG_API_REQUEST_TIMEOUT  e.g. 10s

--addr and --db override the environment when given.

Examples:
  pong api
  pong api --addr :9090 --db ./pong.db
  pong play 1v1 --p1 ann --p2 bob --api http://localhost:8080`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (overrides PONG_API_ADDR)")
	apiCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load if present")
}

func runAPI(cmd *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg, err := api.LoadConfig(flagEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if flagAPIAddr != "" {
		cfg.Addr = flagAPIAddr
	}
	if f := cmd.Flag("db"); f != nil && f.Changed {
		cfg.DBPath = flagDBPath
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("using database", "path", cfg.DBPath)
	if err := api.Serve(ctx, cfg, api.NewRouter(cfg, store, logger), logger); err != nil {
		logger.Error("API server failed", "error", err)
		stop()
		store.Close()
		os.Exit(1)
	}
}
