package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var (
	flagDifficulty string
	flagAPIURL     string
	flagPlayers    [4]string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a match",
	Long: `Start a match in the given mode: ai, 1v1 or 4p (or a registry id
such as pong_1v1).

Controls:
  W/S          - Player 1 (left paddle)
  Up/Down      - Player 2 (right paddle), or player 1 vs AI
  C/V          - Player 3 (top paddle)
  Left/Right   - Player 4 (bottom paddle)
  P/Space      - Pause
  R            - Restart (after game over)
  B/Esc        - Back (when paused or over)
  Q/Ctrl+C     - Quit

Named players (--p1..--p4) are registered on first use and their stats
are kept. Unnamed seats play as guests.

Examples:
  pong play ai
  pong play ai --difficulty hard --p1 ann
  pong play 1v1 --p1 ann --p2 bob
  pong play 4p --p1 ann --p2 bob --p3 cid --p4 dee
  pong play 1v1 --p1 ann --p2 bob --api http://localhost:8080`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagAPIURL, "api", "", "Post results to this pong API instead of the local database")
	for i := range flagPlayers {
		name := fmt.Sprintf("p%d", i+1)
		playCmd.Flags().StringVar(&flagPlayers[i], name, "", fmt.Sprintf("Nick of player %d", i+1))
	}
}

// parseMode accepts a mode name or a registry id.
func parseMode(arg string) (multiplayer.MatchMode, error) {
	for _, m := range multiplayer.Modes() {
		if pong.New(m).ID() == strings.ToLower(arg) {
			return m, nil
		}
	}
	return multiplayer.ParseMode(arg)
}

// newGame builds a configured match ready for tui.Run.
func newGame(mode multiplayer.MatchMode, difficulty config.DifficultyPreset, seats []multiplayer.Seat,
	cfg config.PongConfig, b *backend, logger *log.Logger,
) *pong.Game {
	game := pong.New(mode)
	game.Configure(pong.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Seats:      seats,
		Saver:      b.saver(),
		Logger:     logger,
	})
	return game
}

// playMatch runs one match to completion and waits for its result to be
// saved.
func playMatch(game *pong.Game, cfg core.RuntimeConfig) (core.GameState, error) {
	state, err := tui.Run(game, cfg)
	game.Wait()
	if err != nil {
		return state, err
	}
	if gameErr := game.Err(); gameErr != nil {
		return state, gameErr
	}
	return state, nil
}

func runPlay(_ *cobra.Command, args []string) {
	mode, err := parseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pong list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	pongCfg := loadConfig()
	b := openBackend(flagAPIURL, logger)
	defer b.Close()

	seats := b.seats(mode.Seats(), flagPlayers[:])
	game := newGame(mode, config.ParseDifficulty(flagDifficulty), seats, pongCfg, b, logger)

	state, err := playMatch(game, runtimeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		os.Exit(1)
	}
	printOutcome(game, state)
}

// printOutcome leaves a one-line summary on the terminal after the alt
// screen is gone.
func printOutcome(game *pong.Game, state core.GameState) {
	if !state.GameOver || state.Winner == core.NoPlayer {
		return
	}
	winner := game.Snapshot().WinnerName()
	if winner == "" {
		winner = state.Winner.String()
	}
	scores := make([]string, len(state.Scores))
	for i, s := range state.Scores {
		scores[i] = fmt.Sprint(s)
	}
	fmt.Printf("%s wins %s\n", winner, strings.Join(scores, "-"))
}
