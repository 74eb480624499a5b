package buildconf

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ContentScope summarises one variant's content patterns.
type ContentScope struct {
	Path     string
	Patterns []string
}

// CompareVariants checks several variants of the same build configuration
// against the first one. Input and output must agree; theme and plugin
// differences are warnings. Content is expected to differ and is not reported.
func CompareVariants(variants []*Config) []Issue {
	if len(variants) < 2 {
		return nil
	}

	base := variants[0]
	var issues []Issue
	for _, v := range variants[1:] {
		if cleanPath(v.Input) != cleanPath(base.Input) {
			issues = append(issues, v.newIssue(RuleVariantIODivergence, SeverityError, FieldInput,
				"input %q differs from %q in %s", v.Input, base.Input, base.Path))
		}
		if cleanPath(v.Output) != cleanPath(base.Output) {
			issues = append(issues, v.newIssue(RuleVariantIODivergence, SeverityError, FieldOutput,
				"output %q differs from %q in %s", v.Output, base.Output, base.Path))
		}

		if diff := cmp.Diff(base.Theme, v.Theme, cmpopts.EquateEmpty()); diff != "" {
			issue := v.newIssue(RuleVariantTheme, SeverityWarning, FieldTheme, "theme differs from %s", base.Path)
			issue.Detail = diffLines(diff)
			issues = append(issues, issue)
		}

		if a, b := pluginIDs(base.Plugins), pluginIDs(v.Plugins); a != b {
			issues = append(issues, v.newIssue(RuleVariantPlugins, SeverityWarning, FieldPlugins,
				"plugins [%s] differ from [%s] in %s", b, a, base.Path))
		}
	}
	return issues
}

// ContentScopes lists each variant's patterns in variant order.
func ContentScopes(variants []*Config) []ContentScope {
	scopes := make([]ContentScope, 0, len(variants))
	for _, v := range variants {
		scopes = append(scopes, ContentScope{Path: v.Path, Patterns: append([]string(nil), v.Content...)})
	}
	return scopes
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(filepath.ToSlash(p))
}

func pluginIDs(plugins []Plugin) string {
	ids := make([]string, len(plugins))
	for i, p := range plugins {
		ids[i] = p.ID
	}
	return strings.Join(ids, ", ")
}

func diffLines(diff string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// String renders a scope as "path: a, b".
func (s ContentScope) String() string {
	return fmt.Sprintf("%s: %s", s.Path, strings.Join(s.Patterns, ", "))
}
