// pong is a terminal Pong suite: vs AI, 1 vs 1 and 4-player matches with
// persisted results and player stats.
//
// Usage:
//
//	pong list                   - List available modes
//	pong play <mode>            - Play a match
//	pong menu                   - Pick modes interactively
//	pong tournament             - Play a 4-player knockout bracket
//	pong serve                  - Start SSH server for remote play
//	pong api                    - Start the HTTP persistence API
//	pong stats                  - Show recent matches and the leaderboard
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.pong/pong.db)
//	--config <path>     - Custom pong YAML config
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"

	// Import pong to register its modes
	_ "github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Terminal Pong - vs AI, 1 vs 1 and 4 players",
	Long: `Terminal Pong plays classic Pong in your terminal, against the computer,
against a friend on the same keyboard, or with four paddles at once.
Finished matches are saved with per-player stats.

Available commands:
  list        - Show all modes
  play        - Play a mode directly
  menu        - Interactive mode picker
  tournament  - Four-player knockout bracket
  serve       - Start SSH server for remote play
  api         - Start the HTTP persistence API
  stats       - Print recent matches and the leaderboard

Examples:
  pong play ai --difficulty hard --p1 ann
  pong play 1v1 --p1 ann --p2 bob
  pong menu
  pong tournament --players ann,bob,cid,dee
  pong api`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to the match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pong config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(tournamentCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file they log nowhere.
func newLogger(interactive bool) (*log.Logger, func()) {
	var out io.Writer = os.Stderr
	closer := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
			out = io.Discard
			break
		}
		out = f
		closer = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closer
}

// loadConfig reads the pong config, exiting on a broken file.
func loadConfig() config.PongConfig {
	cfg, err := config.LoadPong(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig sizes the arena to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
