package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start pong with a mode picker menu",
	Long: `Start pong in interactive menu mode.

Pick a mode with Up/Down and a difficulty with Left/Right, then press
Enter. After a match you return to the menu. Tab opens the stats.

Controls:
  Up/Down/j/k     - Pick mode
  Left/Right/h/l  - Pick difficulty
  Enter           - Play
  Tab             - Stats
  Q               - Quit

Examples:
  pong menu
  pong menu --p1 ann --p2 bob
  pong menu --fps 30 --db ./pong.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Initial difficulty preset")
	menuCmd.Flags().StringVar(&flagAPIURL, "api", "", "Use this pong API instead of the local database")
	for i := range flagPlayers {
		name := fmt.Sprintf("p%d", i+1)
		menuCmd.Flags().StringVar(&flagPlayers[i], name, "", fmt.Sprintf("Nick of player %d", i+1))
	}
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	pongCfg := loadConfig()
	b := openBackend(flagAPIURL, logger)
	defer b.Close()

	cfg := runtimeConfig()
	difficulty := config.ParseDifficulty(flagDifficulty)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size and difficulty changes for the next round
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(b.stats(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		mode, err := parseMode(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		game := newGame(mode, difficulty, b.seats(mode.Seats(), flagPlayers[:]), pongCfg, b, logger)

		// Fresh seed for each match unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if _, err := playMatch(game, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		}

		// Loop back to menu
	}
}
