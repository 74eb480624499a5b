package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/buildconf"
	"github.com/yacobolo/twcfg/internal/log"
)

var filesCmd = &cobra.Command{
	Use:   "files [config]",
	Short: "List the template files selected by content",
	Long: `Resolve the content patterns of a build configuration against the project
root and print every selected file, one per line. Files ignored by the
project's .gitignore are skipped unless --no-gitignore is given.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSingle(args)
		if err != nil {
			return err
		}

		root := getStringWithFallback("root", "root", ".")
		opts := buildconf.ResolveOptions{
			RespectGitignore: !getBoolWithFallback("no-gitignore", "files.no-gitignore", false),
		}
		found, stats, err := buildconf.ResolveContent(cfg, root, opts)
		if err != nil {
			return fmt.Errorf("resolving content: %w", err)
		}
		logger := log.WithComponent("files")
		logger.Debug().
			Int("patterns", stats.Patterns).
			Int("discovered", stats.FilesDiscovered).
			Int("selected", stats.FilesSelected).
			Int("ignored", stats.FilesIgnored).
			Int("negated", stats.FilesNegated).
			Msg("content resolved")

		out := cmd.OutOrStdout()
		for _, f := range found {
			fmt.Fprintln(out, f)
		}
		return nil
	},
}

func init() {
	filesCmd.Flags().Bool("no-gitignore", false, "Include files ignored by .gitignore")
}
