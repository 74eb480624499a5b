package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/buildconf"
	"github.com/yacobolo/twcfg/internal/log"
)

// errIssuesFound signals a failing check whose issues were already reported.
var errIssuesFound = errors.New("issues found")

var checkCmd = &cobra.Command{
	Use:   "check [config...]",
	Short: "Validate build configurations and compare variants",
	Long: `Load every given build configuration, validate it against the build
tool's constraints and compare all of them as variants of one configuration.
Exits 1 on any error; with --strict, warnings fail too.`,
	Args: cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
	// The root command runs check, so it accepts the same flags.
	addCheckFlags(rootCmd)
}

func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("check-files", true, "Check that input exists and output directory is writable")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|json")
	f.Bool("print-rule-name", true, "Show (rule) suffix on issues")
	f.Bool("print-detail", true, "Show diff details under variant issues")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("check")
	paths := configPaths(args)
	opts := buildCheckOptions()
	logger.Debug().Strs("configs", paths).Str("root", opts.Root).Bool("check_files", opts.CheckFiles).Msg("checking")

	result, err := buildconf.Check(cmd.Context(), paths, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	logger.Debug().Int("errors", result.ErrorCount).Int("warnings", result.WarningCount).Msg("check done")

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		format := buildconf.DetermineOutputFormat(getStringWithFallback("output-format", "check.output-format", ""))
		if err := buildconf.WriteOutput(cmd.OutOrStdout(), result, format, buildReportConfig()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	strict := getBoolWithFallback("strict", "check.strict", false)
	if result.ErrorCount > 0 || (strict && result.WarningCount > 0) {
		return errIssuesFound
	}
	return nil
}
