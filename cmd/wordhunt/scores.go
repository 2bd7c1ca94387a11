package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top players",
	Long: `Display each player's best session score, highest first.

Examples:
  wordhunt scores
  wordhunt scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of players to show")
}

func runScores(_ *cobra.Command, _ []string) {
	ctx := context.Background()
	eng, store, _, _ := mustEngine(ctx, os.Stderr, "wordhunt")
	defer store.Close()

	scores, err := eng.TopScores(ctx, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top Players")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'wordhunt play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-24s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-24s  %s\n", "----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %s  %d\n", i+1, padRight(entry.PlayerName, 24), entry.Score)
	}
}
