package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/themes"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List playable themes",
	Long:  `Shows every theme with at least three words, with its word count.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import YAML theme packs",
	Long: `Import every .yaml/.yml theme pack under a directory. Existing themes
gain the new words; importing the same pack twice changes nothing.

Pack format:
  language: en
  themes:
    - name: Animals
      words: [cat, dog, horse]

Examples:
  wordhunt import ./packs`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runThemes(_ *cobra.Command, _ []string) {
	ctx := context.Background()
	eng, store, _, _ := mustEngine(ctx, os.Stderr, "wordhunt")
	defer store.Close()

	list, err := eng.Themes(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing themes: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No themes available.")
		return
	}

	fmt.Println("Available themes:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, t := range list {
		if n := len([]rune(t.Name)); n > maxNameLen {
			maxNameLen = n
		}
	}

	fmt.Printf("  %-4s  %-*s  %s\n", "ID", maxNameLen, "Name", "Words")
	fmt.Printf("  %-4s  %-*s  %s\n", "--", maxNameLen, "----", "-----")
	for _, t := range list {
		fmt.Printf("  %-4d  %s  %d\n", t.ID, padRight(t.Name, maxNameLen), t.WordCount)
	}

	fmt.Println()
	fmt.Println("Run 'wordhunt play' to pick one.")
}

func runImport(_ *cobra.Command, args []string) {
	ctx := context.Background()
	_, store, _, _ := mustEngine(ctx, os.Stderr, "wordhunt")
	defer store.Close()

	list, err := themes.NewDirLoader(args[0]).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading theme packs: %v\n", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Printf("No theme packs found in %s\n", args[0])
		return
	}

	res, err := themes.Import(ctx, store, list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing themes: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d themes, %d new words.\n", res.Themes, res.Words)
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	for n := len([]rune(s)); n < width; n++ {
		s += " "
	}
	return s
}
