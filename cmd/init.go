package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/generator"
	"github.com/jubbon/isolde-sub000/internal/logging"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Generate a new devcontainer project",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

var (
	initTemplate      string
	initPreset        string
	initLangVersion   string
	initClaudeVersion string
	initProvider      string
	initHTTPProxy     string
	initHTTPSProxy    string
	initNoProxy       string
	initGitPolicy     string
	initTargetDir     string
	initDryRun        bool
	initYes           bool
)

func init() {
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "Template to use (required)")
	initCmd.Flags().StringVarP(&initPreset, "preset", "p", "", "Preset layered on top of the template")
	initCmd.Flags().StringVar(&initLangVersion, "lang-version", "", "Language version (must be supported by the template)")
	initCmd.Flags().StringVar(&initClaudeVersion, "claude-version", "", "Assistant CLI version")
	initCmd.Flags().StringVar(&initProvider, "claude-provider", "", "Assistant provider (anthropic, openai, bedrock, vertex, azure)")
	initCmd.Flags().StringVar(&initHTTPProxy, "http-proxy", "", "HTTP proxy URL")
	initCmd.Flags().StringVar(&initHTTPSProxy, "https-proxy", "", "HTTPS proxy URL")
	initCmd.Flags().StringVar(&initNoProxy, "no-proxy", "", "Proxy bypass list")
	initCmd.Flags().StringVar(&initGitPolicy, "git-generated", "", "Treatment of generated files (ignored, committed, linguist-generated)")
	initCmd.Flags().StringVar(&initTargetDir, "target-dir", "", "Directory to generate into (default: ./<name>)")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Report what would be generated without writing")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Generate into a non-empty target directory without asking")
	if err := initCmd.MarkFlagRequired("template"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	tmpl, err := catalog.LoadTemplate(initTemplate)
	if err != nil {
		return err
	}

	var preset *config.PresetDescriptor
	if initPreset != "" {
		preset, err = catalog.LoadPreset(initPreset)
		if err != nil {
			return err
		}
	}

	resolver := &config.Resolver{
		Template:    tmpl,
		Preset:      preset,
		Name:        name,
		LangVersion: initLangVersion,
		Provider:    initProvider,
		GitPolicy:   initGitPolicy,
	}
	if initHTTPProxy != "" || initHTTPSProxy != "" {
		resolver.Proxy = &config.ProxySpec{
			HTTP:    initHTTPProxy,
			HTTPS:   initHTTPSProxy,
			NoProxy: initNoProxy,
		}
	}

	spec, err := resolver.Resolve()
	if err != nil {
		return err
	}
	if initClaudeVersion != "" {
		spec.Claude.Version = initClaudeVersion
	}

	targetDir := initTargetDir
	if targetDir == "" {
		targetDir = name
	}

	if !initDryRun && !initYes {
		if entries, err := os.ReadDir(targetDir); err == nil && len(entries) > 0 {
			return errors.New(errors.ExitGeneralError,
				fmt.Sprintf("target directory %s is not empty (use --yes to regenerate into it)", targetDir))
		}
	}

	logging.Debug("starting generation", "name", name, "template", initTemplate, "target", targetDir)

	g := generator.New(spec, targetDir)
	g.TemplateDir = tmpl.Dir
	g.FeaturesRoot = catalog.FeaturesDir()
	g.DryRun = initDryRun

	extras := append([]string{}, tmpl.Features...)
	if preset != nil {
		extras = append(extras, preset.Features...)
	}
	g.ExtraBundles = extras

	report, err := g.Run(ctx)
	if report != nil {
		report.Write(os.Stdout)
	}
	if err != nil {
		logError("generation failed: %v", err)
		return err
	}

	if initDryRun {
		logInfo("Dry run: no files were written")
		return nil
	}

	logSuccess("Generated project %s in %s", name, targetDir)
	return nil
}
