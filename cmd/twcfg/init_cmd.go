package main

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
)

const buildConfigName = "tailwind.config.js"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twcfg.yaml settings file",
	Long: `Create a .twcfg.yaml settings file in the current directory with sensible
defaults. With --build-config, also write a starter tailwind.config.js.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		buildConfig, _ := cmd.Flags().GetBool("build-config")

		files := []struct {
			path, content string
		}{{".twcfg.yaml", defaultSettings}}
		if buildConfig {
			files = append(files, struct{ path, content string }{buildConfigName, defaultBuildConfig})
		}

		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", f.path)
			}
		}
		for _, f := range files {
			if err := writeFileAtomic(f.path, []byte(f.content)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.path)
		}
		return nil
	},
}

// writeFileAtomic replaces path only once the full content is on disk.
func writeFileAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

const defaultSettings = `# twcfg settings
# Docs: https://github.com/yacobolo/twcfg

# Build configurations to check; several entries are compared as variants.
configs:
  - tailwind.config.js
root: .
verbose: false

check:
  check-files: true
  strict: false
  output-format: issues    # issues | json
  print-rule-name: true
  print-detail: true

show:
  format: yaml             # yaml | json

files:
  no-gitignore: false

tokens:
  format: json             # json | yaml
`

const defaultBuildConfig = `/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    'templates/**/*.html',
  ],
  input: 'base.css',
  output: 'static/css/styles.css',
  theme: {
    extend: {},
  },
  plugins: [],
}
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().Bool("build-config", false, "Also write a starter "+buildConfigName)
}
