package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
)

var templatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List available project templates",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	templates, err := catalog.ListTemplates()
	if err != nil {
		return err
	}

	if len(templates) == 0 {
		logInfo("No templates found in %s", catalog.TemplatesDir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tVERSIONS\tDEFAULT\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t--------\t-------\t-----------")

	for _, t := range templates {
		versions := strings.Join(t.Versions, ",")
		if versions == "" {
			versions = "-"
		}
		def := t.DefaultVersion
		if def == "" {
			def = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, versions, def, t.Description)
	}

	return w.Flush()
}
