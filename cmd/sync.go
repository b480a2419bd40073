package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/generator"
	"github.com/jubbon/isolde-sub000/internal/logging"
)

var syncCmd = &cobra.Command{
	Use:   "sync [target-dir]",
	Short: "Regenerate devcontainer artifacts from an existing isolde.yaml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSync,
}

var syncDryRun bool

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would be regenerated without writing")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	ctx := context.Background()

	specPath := filepath.Join(target, config.SpecFileName)
	if _, err := os.Stat(specPath); err != nil {
		return errors.New(errors.ExitNotFound,
			fmt.Sprintf("%s not found in %s, run 'isolde init' first", config.SpecFileName, target))
	}

	spec, err := config.ParseFile(specPath)
	if err != nil {
		return err
	}

	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	logging.Debug("syncing project", "name", spec.Name, "target", target)

	g := generator.New(spec, target)
	g.FeaturesRoot = catalog.FeaturesDir()
	g.DryRun = syncDryRun

	// The runtime language names the template whose overrides and extra
	// bundles apply; a spec without one (or with a template that has since
	// been removed from the catalog) falls back to the embedded defaults.
	if spec.Runtime != nil {
		if tmpl, err := catalog.LoadTemplate(spec.Runtime.Language); err == nil {
			g.TemplateDir = tmpl.Dir
			g.ExtraBundles = tmpl.Features
		} else {
			logging.Debug("no catalog template for runtime language", "language", spec.Runtime.Language)
		}
	}

	report, err := g.Run(ctx)
	if report != nil {
		report.Write(os.Stdout)
	}
	if err != nil {
		logError("sync failed: %v", err)
		return err
	}

	if syncDryRun {
		logInfo("Dry run: no files were written")
		return nil
	}

	logSuccess("Project %s synchronized", spec.Name)
	return nil
}
