// Package twcfg loads and checks build configurations for CSS utility-class
// build tools (tailwind.config.js and friends).
//
// A build configuration names the template globs to scan (content), the
// source and generated stylesheets (input, output), a theme extension and a
// plugin list. twcfg decodes that record from JS, YAML or JSON, validates it
// against the build tool's constraints and compares variants of the same
// configuration for unintended divergence.
//
// # Checking
//
//	result, err := twcfg.Check(ctx, []string{"tailwind/tailwind.config.js"}, twcfg.Options{
//		Root:       ".",
//		CheckFiles: true,
//	})
//
// # Loading
//
//	cfg, err := twcfg.Load("tailwind/tailwind.config.js")
//	tokens := twcfg.MergeTheme(twcfg.DefaultTokens(), cfg.Theme)
//
// # CLI Tool
//
//	go install github.com/yacobolo/twcfg/cmd/twcfg@latest
package twcfg

import (
	"context"

	"github.com/yacobolo/twcfg/internal/buildconf"
)

type (
	// Config is a decoded build configuration.
	Config = buildconf.Config
	// Theme is the design-token extension object.
	Theme = buildconf.Theme
	// Plugin is a plugin reference.
	Plugin = buildconf.Plugin
	// Issue is a single finding.
	Issue = buildconf.Issue
	// Options controls validation.
	Options = buildconf.Options
	// ResolveOptions controls content resolution.
	ResolveOptions = buildconf.ResolveOptions
	// ResolveStats tracks content resolution counts.
	ResolveStats = buildconf.ResolveStats
	// CheckResult holds the outcome of Check.
	CheckResult = buildconf.CheckResult
	// Tokens is a resolved design-token tree.
	Tokens = buildconf.Tokens
)

// Load reads a build configuration from a .js, .cjs, .mjs, .yaml, .yml or .json file.
func Load(path string) (*Config, error) {
	return buildconf.Load(path)
}

// Validate checks a configuration against the build tool's constraints.
func Validate(cfg *Config, opts Options) []Issue {
	return buildconf.Validate(cfg, opts)
}

// CompareVariants flags divergence between variants of one configuration.
func CompareVariants(variants []*Config) []Issue {
	return buildconf.CompareVariants(variants)
}

// Check loads, validates and compares the given configuration files.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	return buildconf.Check(ctx, paths, opts)
}

// ResolveContent lists the files selected by the content patterns.
func ResolveContent(cfg *Config, root string, opts ResolveOptions) ([]string, ResolveStats, error) {
	return buildconf.ResolveContent(cfg, root, opts)
}

// DefaultTokens returns the built-in design tokens.
func DefaultTokens() Tokens {
	return buildconf.DefaultTokens()
}

// MergeTheme resolves a theme against default tokens.
func MergeTheme(defaults Tokens, theme Theme) Tokens {
	return buildconf.MergeTheme(defaults, theme)
}
