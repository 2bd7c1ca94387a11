// wordhunt is a themed word-search game for the terminal.
//
// Usage:
//
//	wordhunt play            - Play in this terminal
//	wordhunt serve           - Start the SSH and/or HTTP servers
//	wordhunt themes          - List playable themes
//	wordhunt import <dir>    - Import YAML theme packs
//	wordhunt scores          - Show the top players
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.wordhunt/configs/wordhunt.yaml)
//	--db <path>          - Database path (default: from config)
//	--seed <value>       - RNG seed for reproducible grids
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordhunt",
	Short: "Wordhunt - find hidden words in your terminal",
	Long: `Wordhunt is a themed word-search game. Pick a theme, find the hidden
words in the letter grid before the clock runs out, and climb the
leaderboard level by level.

Available commands:
  play     - Play in this terminal
  serve    - Start the SSH server and/or the HTTP API
  themes   - List playable themes
  import   - Import YAML theme packs from a directory
  scores   - Show the top players

Examples:
  wordhunt play
  wordhunt play --difficulty easy
  wordhunt serve --ssh :23235 --http :8080
  wordhunt import ./packs
  wordhunt scores`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(scoresCmd)
}
