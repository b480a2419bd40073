package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "isolde",
	Short: "Devcontainer project generator for AI-assisted development",
	Long: `isolde generates complete devcontainer projects from templates.

A generated project contains:
  - A devcontainer definition (devcontainer.json, Dockerfile)
  - Assistant configuration for the chosen provider
  - Feature bundles (assistant CLI, proxy, plugin manager)
  - Git repositories for the workspace and the environment definition`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
