package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Browse the catalog",
	Long: `Browse the catalog.

Without arguments, lists the available categories. With a category,
lists its items with series and saga groups indented.

Examples:
  mediatheque browse
  mediatheque browse films
  mediatheque browse series --flat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowseCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().Bool("flat", false, "Do not expand group members")
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	if len(args) == 0 {
		categories, err := client.Categories()
		if err != nil {
			return fmt.Errorf("list categories failed: %w", err)
		}
		if jsonOutput {
			printJSON(categories)
			return nil
		}
		for _, c := range categories {
			fmt.Printf("%-10s (%s)\n", c.Name, c.Kind)
		}
		return nil
	}

	items, err := client.CategoryItems(args[0])
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}
	if jsonOutput {
		printJSON(items)
		return nil
	}

	flat, _ := cmd.Flags().GetBool("flat")
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	for _, it := range items {
		fmt.Println(formatItemLine(it))
		if it.IsGroup && !flat {
			for _, ep := range it.Episodes {
				fmt.Printf("    %s\n", formatChildLine(ep))
			}
		}
	}
	return nil
}

func formatItemLine(it ItemResponse) string {
	line := it.Title
	if it.LocalizedTitle != "" && it.LocalizedTitle != it.Title {
		line += " / " + it.LocalizedTitle
	}
	if it.Year > 0 {
		line += fmt.Sprintf(" (%d)", it.Year)
	}
	if it.IsGroup {
		line += fmt.Sprintf("  [%d items]", it.EpisodeCount)
	}
	return line
}

func formatChildLine(m MediaItemResponse) string {
	switch {
	case m.Season > 0 && m.Episode > 0:
		return fmt.Sprintf("S%02dE%02d  %s", m.Season, m.Episode, m.Title)
	case m.Sequel > 0:
		return fmt.Sprintf("#%d  %s", m.Sequel, m.Title)
	default:
		return m.Title
	}
}
