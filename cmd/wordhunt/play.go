package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordhunt/internal/platform/tui"
)

var (
	flagPlayerName string
	flagStyle      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Log in, pick a theme and play through its levels.

Controls:
  Arrows/HJKL  - Move the cursor
  Space        - Mark the first letter of a word
  Enter        - Submit the line from the mark to the cursor
  X            - Clear the mark
  F            - Finish the session and keep the score
  Esc          - Abandon the session
  Ctrl+C       - Quit

Examples:
  wordhunt play
  wordhunt play --name Ann --difficulty hard
  wordhunt play --style mono`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayerName, "name", "", "Player name to suggest on login (default: $USER)")
	playCmd.Flags().StringVar(&flagStyle, "style", "default", "Color style: default, mono")
}

func runPlay(_ *cobra.Command, _ []string) {
	styles, ok := tui.StylesByName(flagStyle)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown style %q\n", flagStyle)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The TUI owns the terminal, so logs are dropped.
	eng, store, _, _ := mustEngine(ctx, io.Discard, "wordhunt")
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	name := flagPlayerName
	if name == "" {
		name = os.Getenv("USER")
	}

	if err := tui.Run(ctx, eng, tui.Options{
		Name:   name,
		Styles: styles,
		Width:  width,
		Height: height,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
