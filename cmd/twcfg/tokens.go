package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/buildconf"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [config] [section]",
	Short: "Print design tokens after applying the theme",
	Long: `Resolve the configuration's theme against the built-in tokens and print
the result. Sections in theme replace the defaults; sections in theme.extend
are merged into them. Pass a section name to print only that section.`,
	Args: cobra.MaximumNArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var section string
		if len(args) == 2 {
			section = args[1]
			args = args[:1]
		}
		cfg, err := loadSingle(args)
		if err != nil {
			return err
		}

		tokens := buildconf.MergeTheme(buildconf.DefaultTokens(), cfg.Theme)
		format := getStringWithFallback("format", "tokens.format", "json")
		if section == "" {
			return writeValue(cmd, tokens, format)
		}

		value, ok := tokens[section]
		if !ok {
			names := make([]string, 0, len(tokens))
			for name := range tokens {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown token section %q (available: %s)", section, strings.Join(names, ", "))
		}
		return writeValue(cmd, value, format)
	},
}

func init() {
	tokensCmd.Flags().String("format", "json", "Output format: json|yaml")
}
