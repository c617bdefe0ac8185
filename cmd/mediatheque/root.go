package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	authToken  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "mediatheque",
	Short: "CLI client for the mediatheque streaming server",
	Long: `mediatheque - CLI client for the mediatheque streaming server

Browse the catalog, search titles, and inspect how filenames
are parsed into series, sequels and sagas.

Run 'mediathequed' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("MEDIATHEQUE_TOKEN"), "Bearer token (defaults to $MEDIATHEQUE_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediatheque {{.Version}}\n")
}
