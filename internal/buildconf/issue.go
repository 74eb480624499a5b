package buildconf

import "fmt"

// Issue represents a single finding in golangci-lint format
type Issue struct {
	Rule     string   `json:"Rule"`     // "content-glob"
	Text     string   `json:"Text"`     // "invalid glob pattern \"templates/[*.html\""
	Severity string   `json:"Severity"` // "", "warning", "error"
	Field    string   `json:"Field"`    // "content"
	Pos      IssuePos `json:"Pos"`
	Detail   []string `json:"Detail,omitempty"` // extra lines printed under the issue
}

// IssuePos specifies the location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "tailwind/tailwind.config.js"
	Line     int    `json:"Line"`     // 0 when unknown
	Column   int    `json:"Column"`
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Rule names
const (
	RuleSchema                = "schema"
	RuleUnknownField          = "unknown-field"
	RuleContentRequired       = "content-required"
	RuleContentGlob           = "content-glob"
	RuleContentAbsolute       = "content-absolute"
	RuleContentNoMatch        = "content-no-match"
	RuleContentIncludesOutput = "content-includes-output"
	RuleInputRequired         = "input-required"
	RuleInputExtension        = "input-extension"
	RuleInputMissing          = "input-missing"
	RuleInputStylesheet       = "input-stylesheet"
	RuleOutputRequired        = "output-required"
	RuleOutputExtension       = "output-extension"
	RuleOutputDir             = "output-dir"
	RuleOutputSameAsInput     = "output-same-as-input"
	RuleThemeType             = "theme-type"
	RuleThemeExtend           = "theme-extend"
	RuleThemeUnknownKey       = "theme-unknown-key"
	RuleThemeOverride         = "theme-override"
	RulePluginID              = "plugin-id"
	RulePluginDuplicate       = "plugin-duplicate"
	RuleVariantIODivergence   = "variant-io-divergence"
	RuleVariantTheme          = "variant-theme-divergence"
	RuleVariantPlugins        = "variant-plugins-divergence"
)

// newIssue builds an issue positioned at the field's source line, if known.
func (c *Config) newIssue(rule, severity, field, format string, args ...any) Issue {
	issue := Issue{
		Rule:     rule,
		Text:     fmt.Sprintf(format, args...),
		Severity: severity,
		Field:    field,
		Pos:      IssuePos{Filename: c.Path},
	}
	if line, ok := c.Lines[field]; ok {
		issue.Pos.Line = line
		issue.Pos.Column = 1
	}
	return issue
}

// CountSeverity returns the number of errors and warnings in issues.
func CountSeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
