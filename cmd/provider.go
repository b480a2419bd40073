package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/state"
)

var providerCmd = &cobra.Command{
	Use:   "provider [target-dir]",
	Short: "Show the provider a generated project was built for",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProvider,
}

var providerCredentialsDir string

func init() {
	providerCmd.Flags().StringVar(&providerCredentialsDir, "credentials-dir", "", "Check that credentials exist under this directory")
	rootCmd.AddCommand(providerCmd)
}

func runProvider(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	provider, err := state.ReadMarker(target)
	if err != nil {
		return err
	}
	logInfo("Provider: %s", provider)

	credentialsDir := providerCredentialsDir
	if credentialsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		credentialsDir = filepath.Join(home, ".isolde", "credentials")
	}

	creds, err := state.LookupCredentials(credentialsDir, provider)
	if err != nil {
		logWarning("No credentials for %s under %s", provider, credentialsDir)
		return nil
	}

	logSuccess("Credentials found for %s", provider)
	if creds.BaseURL != "" {
		logInfo("Base URL: %s", creds.BaseURL)
	}
	return nil
}
