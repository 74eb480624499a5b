package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/buildconf"
	"github.com/yacobolo/twcfg/internal/log"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show [config]",
	Short: "Print the normalised build configuration",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSingle(args)
		if err != nil {
			return err
		}
		format := getStringWithFallback("format", "show.format", "yaml")
		return writeValue(cmd, cfg.View(), format)
	},
}

func init() {
	showCmd.Flags().String("format", "yaml", "Output format: yaml|json")
}

// loadSingle loads the one config a command operates on. Decode problems are
// logged; they do not stop show, files or tokens.
func loadSingle(args []string) (*buildconf.Config, error) {
	path := configPaths(args)[0]
	cfg, err := buildconf.Load(path)
	if err != nil {
		return nil, err
	}
	logger := log.WithComponent("load")
	for _, issue := range cfg.Issues {
		logger.Warn().Str("rule", issue.Rule).Int("line", issue.Pos.Line).Msg(issue.Text)
	}
	return cfg, nil
}

func writeValue(cmd *cobra.Command, value any, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
