// scripts/gcal-auth/main.go
//
// Run this once locally to authorize calendar export of planned activities
// and write the OAuth token the API and CLI read (google_calendar.credentials_path
// must point at the same desktop app credentials).
//
// Usage:
//   go run ./scripts/gcal-auth --credentials google-credentials.json --token token.json

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	var credsPath, tokenPath string

	cmd := &cobra.Command{
		Use:   "gcal-auth",
		Short: "Authorize Google Calendar export and save an OAuth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authorize(cmd.Context(), credsPath, tokenPath)
		},
	}
	cmd.Flags().StringVar(&credsPath, "credentials", "google-credentials.json", "OAuth desktop app credentials file")
	cmd.Flags().StringVar(&tokenPath, "token", "token.json", "where to write the token")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func authorize(ctx context.Context, credsPath, tokenPath string) error {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("read credentials file %q: %w", credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return fmt.Errorf("parse credentials (is %q an OAuth desktop app file?): %w", credsPath, err)
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("Step 1: open this URL and sign in with the calendar owner's Google account:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Print("Step 2: paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", tokenPath, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write %s: %w", tokenPath, err)
	}

	fmt.Printf("\nToken saved to %s. Restart the API to enable calendar export.\n", tokenPath)
	return nil
}
