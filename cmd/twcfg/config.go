package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/twcfg/internal/buildconf"
	"github.com/yacobolo/twcfg/internal/log"
)

var k = koanf.New(".")

// defaultConfigPaths is used when neither arguments nor settings name a config.
var defaultConfigPaths = []string{"tailwind.config.js"}

// loadConfig loads settings with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twcfg.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only explicitly set flags are merged; defaults live in the getters so a
	// flag default never shadows a value from the file or environment.
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	configureLogging()
	return nil
}

// loadConfigFromPath loads settings from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// TWCFG_CHECK__OUTPUT_FORMAT -> check.output-format, TWCFG_ROOT -> root
	if err := k.Load(env.Provider("TWCFG_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable onto a settings key. A double
// underscore separates sections and a single one stands for a hyphen.
func envKey(name string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(name, "TWCFG_")), "__")
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(part, "_", "-")
	}
	return strings.Join(parts, ".")
}

func configureLogging() {
	level := ""
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	log.Configure(log.Config{Level: level})
}

// configPaths returns the build configs to operate on: arguments first, then
// the "configs" setting, then tailwind.config.js.
func configPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if paths := k.Strings("configs"); len(paths) > 0 {
		return paths
	}
	if path := k.String("configs"); path != "" {
		return []string{path}
	}
	return defaultConfigPaths
}

// buildCheckOptions constructs validation options from koanf state.
func buildCheckOptions() buildconf.Options {
	return buildconf.Options{
		Root:       getStringWithFallback("root", "root", "."),
		CheckFiles: getBoolWithFallback("check-files", "check.check-files", true),
	}
}

// buildReportConfig constructs reporter options from koanf state.
func buildReportConfig() buildconf.ReportConfig {
	return buildconf.ReportConfig{
		UseColors:     getBoolWithFallback("color", "color", false),
		PrintRuleName: getBoolWithFallback("print-rule-name", "check.print-rule-name", true),
		PrintDetail:   getBoolWithFallback("print-detail", "check.print-detail", true),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
