package buildconf

// Config is a decoded Build Configuration record.
type Config struct {
	Path     string   // "tailwind/tailwind.config.js"
	Content  []string // ["templates/**/*.html", "!templates/drafts/**"]
	Relative bool     // content.relative: resolve patterns against the config file's directory
	Input    string   // "base.css"
	Output   string   // "static/css/styles.css"
	Theme    Theme
	Plugins  []Plugin

	// Present records which top-level fields appeared in the source.
	Present map[string]bool
	// Lines maps top-level field names to their 1-based source line (JS sources only).
	Lines map[string]int
	// Issues found while decoding (type errors, unknown fields).
	Issues []Issue
}

// Has reports whether the field was present in the source.
func (c *Config) Has(field string) bool {
	return c.Present[field]
}

// Theme is the design-token extension object.
type Theme struct {
	Sections map[string]any // top-level sections that replace defaults
	Extend   map[string]any // theme.extend, deep-merged into defaults
	// HasExtend is true when theme.extend was written out, even if empty.
	HasExtend bool
}

// IsEmpty reports whether the theme carries no token values.
func (t Theme) IsEmpty() bool {
	return len(t.Sections) == 0 && len(t.Extend) == 0
}

// Plugin is a reference to a build tool plugin.
type Plugin struct {
	ID      string // "@tailwindcss/forms" or "./plugins/grid"
	Require bool   // written as require('...')
}

// Options controls Validate.
type Options struct {
	Root       string // project root for relative paths (default: cwd)
	CheckFiles bool   // stat input/output and glob content against the filesystem
}

// ResolveOptions controls ResolveContent.
type ResolveOptions struct {
	RespectGitignore bool
}

// ResolveStats tracks content resolution counts.
type ResolveStats struct {
	Patterns        int // patterns evaluated (including negations)
	FilesDiscovered int // files matched before filtering
	FilesSelected   int // files in the final list
	FilesIgnored    int // dropped by .gitignore
	FilesNegated    int // dropped by "!" patterns
}

// Tokens is a resolved design-token tree: section -> name -> value.
type Tokens map[string]any

// OutputFormat represents the report format.
type OutputFormat string

const (
	// OutputIssues prints issues in golangci-lint format
	OutputIssues OutputFormat = "issues"
	// OutputJSON exports structured data for tooling
	OutputJSON OutputFormat = "json"
)

// Top-level field names.
const (
	FieldContent = "content"
	FieldInput   = "input"
	FieldOutput  = "output"
	FieldTheme   = "theme"
	FieldPlugins = "plugins"
)

// passthroughFields are accepted by the build tool but not modelled here.
var passthroughFields = map[string]bool{
	"darkMode":     true,
	"prefix":       true,
	"important":    true,
	"separator":    true,
	"corePlugins":  true,
	"presets":      true,
	"safelist":     true,
	"blocklist":    true,
	"future":       true,
	"experimental": true,
}

// stylesheetExts are the extensions accepted for input and output.
var stylesheetExts = []string{".css", ".pcss", ".postcss", ".scss", ".sass", ".less", ".styl"}
