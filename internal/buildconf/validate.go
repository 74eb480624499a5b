package buildconf

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// npmPackageName matches scoped and unscoped npm package names.
var npmPackageName = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*(/[A-Za-z0-9-._~]+)*$`)

const maxPackageNameLen = 214

// Validate checks a decoded configuration against the build tool's
// constraints. Decode issues recorded on cfg are included first.
func Validate(cfg *Config, opts Options) []Issue {
	root := opts.Root
	if root == "" {
		root = "."
	}

	v := &validator{cfg: cfg, opts: opts, root: root}
	v.issues = append(v.issues, cfg.Issues...)

	v.checkContent()
	v.checkPaths()
	v.checkTheme()
	v.checkPlugins()

	return v.issues
}

type validator struct {
	cfg    *Config
	opts   Options
	root   string
	issues []Issue
}

func (v *validator) add(rule, severity, field, format string, args ...any) {
	v.issues = append(v.issues, v.cfg.newIssue(rule, severity, field, format, args...))
}

func (v *validator) hasSchemaIssue(field string) bool {
	for _, issue := range v.cfg.Issues {
		if issue.Field == field && issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (v *validator) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(v.root, p)
}

func (v *validator) checkContent() {
	cfg := v.cfg
	if len(cfg.Content) == 0 {
		if !v.hasSchemaIssue(FieldContent) {
			v.add(RuleContentRequired, SeverityError, FieldContent,
				"content must list at least one glob pattern, the build tool will find no class references")
		}
		return
	}

	base := ContentRoot(cfg, v.root)
	for _, raw := range cfg.Content {
		pattern, negated := splitNegation(raw)
		if strings.TrimSpace(pattern) == "" {
			v.add(RuleContentGlob, SeverityError, FieldContent, "empty content pattern %q", raw)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			v.add(RuleContentGlob, SeverityError, FieldContent, "invalid glob pattern %q", raw)
			continue
		}
		if filepath.IsAbs(pattern) {
			v.add(RuleContentAbsolute, SeverityWarning, FieldContent,
				"content pattern %q is absolute, patterns should be relative to the project root", raw)
		}
		if v.opts.CheckFiles && !negated {
			found, err := patternMatchesAny(base, pattern)
			if err != nil {
				v.add(RuleContentGlob, SeverityError, FieldContent, "expanding %q: %v", raw, err)
			} else if !found {
				v.add(RuleContentNoMatch, SeverityWarning, FieldContent, "content pattern %q matches no files", raw)
			}
		}
	}

	if cfg.Output != "" && !cfg.Relative && outputMatchedByContent(cfg.Content, cfg.Output) {
		v.add(RuleContentIncludesOutput, SeverityWarning, FieldContent,
			"output %q is matched by content patterns, generated CSS would be rescanned", cfg.Output)
	}
}

// outputMatchedByContent applies patterns in order, honouring "!" exclusions.
func outputMatchedByContent(patterns []string, output string) bool {
	target := path.Clean(filepath.ToSlash(output))
	matched := false
	for _, raw := range patterns {
		pattern, negated := splitNegation(raw)
		ok, err := doublestar.Match(path.Clean(filepath.ToSlash(pattern)), target)
		if err != nil || !ok {
			continue
		}
		matched = !negated
	}
	return matched
}

func (v *validator) checkPaths() {
	cfg := v.cfg
	inputOK := v.checkStylesheetPath(FieldInput, cfg.Input, RuleInputRequired, RuleInputExtension)
	outputOK := v.checkStylesheetPath(FieldOutput, cfg.Output, RuleOutputRequired, RuleOutputExtension)

	if cfg.Input != "" && cfg.Output != "" && v.resolve(cfg.Input) == v.resolve(cfg.Output) {
		v.add(RuleOutputSameAsInput, SeverityError, FieldOutput,
			"output %q is the same file as input, the build would overwrite its source", cfg.Output)
	}

	if !v.opts.CheckFiles {
		return
	}
	if inputOK {
		v.checkInputFile()
	}
	if outputOK {
		v.checkOutputDir()
	}
}

func (v *validator) checkStylesheetPath(field, value, requiredRule, extRule string) bool {
	if value == "" {
		if !v.hasSchemaIssue(field) {
			v.add(requiredRule, SeverityError, field, "%s must be a non-empty stylesheet path", field)
		}
		return false
	}
	if !isStylesheetPath(value) {
		v.add(extRule, SeverityError, field, "%s %q must end in a stylesheet extension (%s)",
			field, value, strings.Join(stylesheetExts, ", "))
		return false
	}
	return true
}

// isStylesheetPath reports whether p ends in a recognised stylesheet extension.
func isStylesheetPath(p string) bool {
	return slices.Contains(stylesheetExts, strings.ToLower(filepath.Ext(p)))
}

func (v *validator) checkInputFile() {
	input := v.resolve(v.cfg.Input)
	info, err := os.Stat(input)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		v.add(RuleInputMissing, SeverityError, FieldInput, "input stylesheet %q does not exist", v.cfg.Input)
		return
	case err != nil:
		v.add(RuleInputMissing, SeverityError, FieldInput, "input stylesheet %q: %v", v.cfg.Input, err)
		return
	case info.IsDir():
		v.add(RuleInputMissing, SeverityError, FieldInput, "input %q is a directory, not a stylesheet", v.cfg.Input)
		return
	}

	report, err := InspectStylesheet(input)
	if err != nil {
		v.add(RuleInputStylesheet, SeverityError, FieldInput, "input stylesheet %q: %v", v.cfg.Input, err)
		return
	}
	for _, perr := range report.Errors {
		v.issues = append(v.issues, Issue{
			Rule:     RuleInputStylesheet,
			Text:     perr.Message,
			Severity: SeverityError,
			Field:    FieldInput,
			Pos:      IssuePos{Filename: input, Line: perr.Line, Column: perr.Column},
		})
	}
	if !report.HasBuildDirectives() {
		v.add(RuleInputStylesheet, SeverityWarning, FieldInput,
			"input stylesheet %q has no @tailwind or @import directives", v.cfg.Input)
	}
}

func (v *validator) checkOutputDir() {
	dir := filepath.Dir(v.resolve(v.cfg.Output))

	// The build tool creates missing directories, so check the nearest existing ancestor.
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				v.add(RuleOutputDir, SeverityError, FieldOutput, "output parent %q is not a directory", dir)
				return
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			v.add(RuleOutputDir, SeverityError, FieldOutput, "output parent %q: %v", dir, err)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			v.add(RuleOutputDir, SeverityError, FieldOutput, "no existing parent directory for output %q", v.cfg.Output)
			return
		}
		dir = parent
	}

	probe, err := os.CreateTemp(dir, ".twcfg-probe-*")
	if err != nil {
		v.add(RuleOutputDir, SeverityError, FieldOutput, "output directory %q is not writable", dir)
		return
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
}

func (v *validator) checkTheme() {
	theme := v.cfg.Theme

	for _, name := range sortedKeys(theme.Sections) {
		if !knownThemeSections[name] {
			v.add(RuleThemeUnknownKey, SeverityWarning, FieldTheme, "theme.%s is not a known design-token section", name)
			continue
		}
		v.add(RuleThemeOverride, SeverityInfo, FieldTheme,
			"theme.%s replaces the default %s tokens, use theme.extend.%s to add to them", name, name, name)
	}
	for _, name := range sortedKeys(theme.Extend) {
		if !knownThemeSections[name] {
			v.add(RuleThemeUnknownKey, SeverityWarning, FieldTheme, "theme.extend.%s is not a known design-token section", name)
		}
	}
}

func (v *validator) checkPlugins() {
	seen := make(map[string]bool)
	for i, plugin := range v.cfg.Plugins {
		if !validPluginID(plugin.ID) {
			v.add(RulePluginID, SeverityError, FieldPlugins, "plugins[%d] %q is not a valid plugin identifier", i, plugin.ID)
			continue
		}
		if seen[plugin.ID] {
			v.add(RulePluginDuplicate, SeverityWarning, FieldPlugins, "plugin %q is listed more than once", plugin.ID)
		}
		seen[plugin.ID] = true
	}
}

// validPluginID accepts npm package names (optionally with a subpath) and
// relative or absolute module paths.
func validPluginID(id string) bool {
	if id == "" || strings.ContainsAny(id, " \t\r\n") {
		return false
	}
	if strings.HasPrefix(id, "./") || strings.HasPrefix(id, "../") || strings.HasPrefix(id, "/") {
		return strings.TrimLeft(id, "./") != "" && !strings.HasSuffix(id, "/")
	}
	return len(id) <= maxPackageNameLen && npmPackageName.MatchString(id)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
