package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a project specification document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := config.SpecFileName
	if len(args) == 1 {
		path = args[0]
	}

	spec, err := config.ParseFile(path)
	if err != nil {
		return err
	}

	if err := spec.Validate(); err != nil {
		return err
	}

	logSuccess("%s is valid (schema version %s)", path, spec.Version)
	return nil
}
