package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var flagStatsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats [nick]",
	Short: "Show recent matches and the leaderboard",
	Long: `Print the most recent matches and every player's stats. With a nick,
print that player's stats and matches only.

Examples:
  pong stats
  pong stats ann
  pong stats --limit 5
  pong stats --api http://localhost:8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of matches to show")
	statsCmd.Flags().StringVar(&flagAPIURL, "api", "", "Read from this pong API instead of the local database")
}

func runStats(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	b := openBackend(flagAPIURL, logger)
	defer b.Close()

	src := b.stats()
	if src == nil {
		fmt.Fprintln(os.Stderr, "Error: no database available")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	stats, err := src.AllStats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	matches, err := src.RecentMatches(ctx, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		stats, matches = filterByNick(stats, matches, args[0])
		if len(stats) == 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown player %q\n", args[0])
			os.Exit(1)
		}
	}

	printMatches(matches)
	fmt.Println()
	printLeaderboard(stats)
}

// filterByNick keeps one player's row and the matches they played.
func filterByNick(stats []storage.UserStats, matches []storage.Match, nick string) ([]storage.UserStats, []storage.Match) {
	var keep []storage.UserStats
	for _, st := range stats {
		if strings.EqualFold(st.Nick, nick) {
			keep = append(keep, st)
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}

	id := keep[0].UserID
	var played []storage.Match
	for _, m := range matches {
		for _, line := range m.Lines() {
			if line.UserID != nil && *line.UserID == id {
				played = append(played, m)
				break
			}
		}
	}
	return keep, played
}

func printMatches(matches []storage.Match) {
	fmt.Println("Recent matches:")
	fmt.Println()
	if len(matches) == 0 {
		fmt.Println("  No matches recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-4s  %-32s  %-9s  %-6s  %s\n", "#", "Mode", "Players", "Score", "Time", "Date")
	fmt.Printf("  %-5s  %-4s  %-32s  %-9s  %-6s  %s\n", "-", "----", "-------", "-----", "----", "----")
	for _, m := range matches {
		lines := m.Lines()
		mode := "1v1"
		if m.Details != nil && m.Details.Mode != "" {
			mode = string(m.Details.Mode)
		}
		names := make([]string, len(lines))
		scores := make([]string, len(lines))
		for i, l := range lines {
			names[i] = lineName(l)
			if l.Winner {
				names[i] += "*"
			}
			scores[i] = fmt.Sprint(l.Score)
		}
		d := time.Duration(m.DurationSeconds) * time.Second
		fmt.Printf("  %-5d  %-4s  %-32s  %-9s  %-6s  %s\n",
			m.ID, mode,
			strings.Join(names, " vs "),
			strings.Join(scores, "-"),
			fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60),
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func lineName(l multiplayer.PlayerLine) string {
	switch {
	case l.Name != "":
		return l.Name
	case l.UserID != nil:
		return fmt.Sprintf("#%d", *l.UserID)
	}
	return "guest"
}

func printLeaderboard(stats []storage.UserStats) {
	fmt.Println("Leaderboard:")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("  No players registered yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %4s  %4s  %4s  %4s  %4s  %5s  %5s  %6s  %4s\n",
		"Rank", "Nick", "GP", "W", "L", "GF", "GA", "Shots", "Saves", "Streak", "Best")
	for i, st := range stats {
		fmt.Printf("  %-4d  %-16s  %4d  %4d  %4d  %4d  %4d  %5d  %5d  %6d  %4d\n",
			i+1, st.Nick, st.GamesPlayed, st.Wins, st.Losses, st.GoalsScored, st.GoalsReceived,
			st.ShotsOnTarget, st.Saves, st.WinStreak, st.BestStreak)
	}
}
