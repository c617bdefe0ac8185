package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the catalog",
	Long: `Search the catalog across all categories.

Matching is accent-insensitive and checks localized titles too.

Examples:
  mediatheque search amelie
  mediatheque search "star wars" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	client := NewClient(serverURL, authToken)
	results, err := client.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}

	fmt.Printf("Found %d matches for %q:\n\n", len(results), query)
	for _, m := range results {
		line := "  " + m.Title
		if m.LocalizedTitle != "" && m.LocalizedTitle != m.Title {
			line += " / " + m.LocalizedTitle
		}
		if m.Year > 0 {
			line += fmt.Sprintf(" (%d)", m.Year)
		}
		fmt.Printf("%-60s %s\n", line, m.Kind)
	}
	return nil
}
