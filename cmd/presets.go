package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "list-presets",
	Short: "List available presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	presets, err := catalog.ListPresets()
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		logInfo("No presets found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTEMPLATE\tLANG VERSION\tDESCRIPTION")
	fmt.Fprintln(w, "------\t--------\t------------\t-----------")

	for _, p := range presets {
		version := p.LangVersion
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Template, version, p.Description)
	}

	return w.Flush()
}
