package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Obtain an access token",
	Long: `Obtain an access token from the server.

The password is read from stdin. Export the printed token as
MEDIATHEQUE_TOKEN so later commands authenticate automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoginCmd,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLoginCmd(_ *cobra.Command, args []string) error {
	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	client := NewClient(serverURL, "")
	resp, err := client.Login(args[0], password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("export MEDIATHEQUE_TOKEN=%s\n", resp.Token)
	return nil
}
