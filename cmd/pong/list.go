package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered pong mode with its seat count.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-9s  %s\n", maxIDLen, "ID", "Mode", "Keyboards", "Title")
	fmt.Printf("  %-*s  %-5s  %-9s  %s\n", maxIDLen, "--", "----", "---------", "-----")

	for _, g := range games {
		mode, err := parseMode(g.ID)
		if err != nil {
			mode = multiplayer.MatchMode("?")
		}
		fmt.Printf("  %-*s  %-5s  %-9d  %s\n", maxIDLen, g.ID, string(mode), g.Players, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pong play <mode>' to play, e.g. 'pong play 1v1'.")
}
