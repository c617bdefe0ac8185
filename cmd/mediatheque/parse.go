package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediatheque/pkg/title"
)

var parseCmd = &cobra.Command{
	Use:   "parse <filename>...",
	Short: "Parse media filenames (local, no server needed)",
	Long: `Parse media filenames and show what the catalog would extract.

Examples:
  mediatheque parse "Breaking.Bad.S01E02.VOSTFR.1080p.mkv"
  mediatheque parse "Matrix 2.mp4" "Le.Voyage.2019.mkv"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

type parseResult struct {
	Input   string             `json:"input"`
	Clean   string             `json:"clean"`
	Title   string             `json:"title"`
	Slug    string             `json:"slug"`
	Year    int                `json:"year,omitempty"`
	Genre   string             `json:"genre,omitempty"`
	Episode *title.EpisodeInfo `json:"episode,omitempty"`
	Sequel  *title.SequelInfo  `json:"sequel,omitempty"`
}

func runParseCmd(_ *cobra.Command, args []string) error {
	results := make([]parseResult, 0, len(args))
	for _, filename := range args {
		r := parseResult{
			Input:   filename,
			Clean:   title.Clean(filename),
			Title:   title.Format(filename),
			Slug:    title.Slug(filename),
			Episode: title.ExtractEpisode(filename),
			Sequel:  title.ExtractSequel(filename),
		}
		if y, ok := title.Year(filename); ok {
			r.Year = y
		}
		if g, ok := title.Genre(filename); ok {
			r.Genre = g
		}
		results = append(results, r)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Input:   %s\n", r.Input)
		fmt.Printf("Title:   %s\n", r.Title)
		fmt.Printf("Slug:    %s\n", r.Slug)
		if r.Year > 0 {
			fmt.Printf("Year:    %d\n", r.Year)
		}
		if r.Genre != "" {
			fmt.Printf("Genre:   %s\n", r.Genre)
		}
		if r.Episode != nil {
			fmt.Printf("Episode: %s %s\n", r.Episode.Series, r.Episode.Code)
		}
		if r.Sequel != nil {
			fmt.Printf("Sequel:  %s #%d\n", r.Sequel.BaseTitle, r.Sequel.Number)
			if r.Sequel.HasSubtitle {
				fmt.Printf("Subtitle: %s\n", r.Sequel.Subtitle)
			}
		}
	}
	return nil
}
