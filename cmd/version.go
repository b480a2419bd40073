package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("isolde %s (schema versions: %s)\n", Version, strings.Join(config.SupportedSchemaVersions(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
