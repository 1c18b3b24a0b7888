package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var flagTournamentPlayers string

var tournamentCmd = &cobra.Command{
	Use:   "tournament",
	Short: "Play a four-player knockout bracket",
	Long: `Play a single-elimination bracket of 1 vs 1 matches: the first two
players meet in one semi-final, the last two in the other, and the
winners play the final. Every match is saved like a normal 1v1 match.

The left player uses W/S and the right player uses Up/Down. A finished
match cannot be restarted: press B to move on to the next one. Quitting
a match abandons the tournament.

Examples:
  pong tournament --players ann,bob,cid,dee
  pong tournament --players ann,bob,cid,dee --difficulty hard`,
	Run: runTournament,
}

func init() {
	tournamentCmd.Flags().StringVar(&flagTournamentPlayers, "players", "", "Comma-separated nicks of the four entrants")
	tournamentCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	tournamentCmd.Flags().StringVar(&flagAPIURL, "api", "", "Post results to this pong API instead of the local database")
	_ = tournamentCmd.MarkFlagRequired("players")
}

func runTournament(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	pongCfg := loadConfig()
	b := openBackend(flagAPIURL, logger)
	defer b.Close()

	nicks := strings.Split(flagTournamentPlayers, ",")
	t, err := pong.NewTournament(b.seats(len(nicks), nicks))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	base := pong.Setup{
		Difficulty: config.ParseDifficulty(flagDifficulty),
		Config:     pongCfg,
		Seed:       cfg.Seed,
	}

	for !t.Done() {
		setup, err := t.Setup(base)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pairing, _ := t.Current()
		logger.Info("tournament match", "round", pairing.Round, "left", pairing.Left.Name, "right", pairing.Right.Name)

		game := pong.New(setup.Mode)
		game.Configure(pong.Options{
			Config:     setup.Config,
			Difficulty: setup.Difficulty,
			Seats:      setup.Seats,
			Saver:      b.saver(),
			Logger:     logger,
			NoRestart:  setup.NoRestart,
		})
		cfg.Seed = setup.Seed
		state, err := playMatch(game, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
			os.Exit(1)
		}
		if !state.GameOver || state.Winner == core.NoPlayer {
			fmt.Println("Tournament abandoned.")
			return
		}
		if err := t.Record(state.Winner); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	printBracket(t)
}

func printBracket(t *pong.Tournament) {
	for _, p := range t.Pairings() {
		stage := "Semi-final"
		if p.Round == 2 {
			stage = "Final"
		}
		winner, _ := p.WinnerSeat()
		fmt.Printf("  %-10s  %s vs %s  ->  %s\n", stage, p.Left.Name, p.Right.Name, winner.Name)
	}
	if champ, ok := t.Champion(); ok {
		fmt.Printf("\nChampion: %s\n", champ.Name)
	}
}
