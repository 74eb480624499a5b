package buildconf

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// ReportConfig controls how issues are printed.
type ReportConfig struct {
	UseColors     bool // force colors
	PrintRuleName bool // "(content-glob)" suffix
	PrintDetail   bool // diff lines under variant issues
}

// Reporter handles formatting and outputting check results
type Reporter struct {
	w             io.Writer
	useColors     bool
	printRuleName bool
	printDetail   bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:             w,
		useColors:     shouldUseColors(config),
		printRuleName: config.PrintRuleName,
		printDetail:   config.PrintDetail,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	if config.UseColors {
		return true
	}

	// GitHub Actions and most CI runners honour FORCE_COLOR
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// SortIssues orders issues by file, line, column and rule.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.Rule < b.Rule
	})
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := formatLocation(issue.Pos)

	ruleSuffix := ""
	if r.printRuleName {
		ruleSuffix = fmt.Sprintf(" (%s)", issue.Rule)
	}

	text := issue.Text
	switch issue.Severity {
	case SeverityError:
		text = RenderStyle(StyleRed, "error: ", r.useColors) + text
	case SeverityWarning:
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, ruleSuffix, r.useColors))

	if r.printDetail {
		for _, line := range issue.Detail {
			fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleGray, line, r.useColors))
		}
	}
}

// formatLocation renders "file:line:col:", dropping unknown parts.
func formatLocation(pos IssuePos) string {
	switch {
	case pos.Line > 0 && pos.Column > 0:
		return fmt.Sprintf("%s:%d:%d:", pos.Filename, pos.Line, pos.Column)
	case pos.Line > 0:
		return fmt.Sprintf("%s:%d:", pos.Filename, pos.Line)
	default:
		return pos.Filename + ":"
	}
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result CheckResult) {
	total := len(result.Issues)
	errors, warnings := result.ErrorCount, result.WarningCount

	fmt.Fprintln(r.w, "")

	if total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen,
			fmt.Sprintf("%s checked, no issues", pluralizeCount(len(result.Configs), "config", "configs")), r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s (%s, %s):\n",
		pluralizeCount(total, "issue", "issues"),
		pluralizeCount(errors, "error", "errors"),
		pluralizeCount(warnings, "warning", "warnings"))

	ruleCounts := make(map[string]int)
	for _, issue := range result.Issues {
		ruleCounts[issue.Rule]++
	}
	rules := make([]string, 0, len(ruleCounts))
	for rule := range ruleCounts {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	for _, rule := range rules {
		fmt.Fprintf(r.w, "* %s: %d\n", rule, ruleCounts[rule])
	}
}

// PrintScopes lists each variant's content patterns.
func (r *Reporter) PrintScopes(scopes []ContentScope) {
	if len(scopes) < 2 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Content scope per variant:", r.useColors))
	for _, scope := range scopes {
		fmt.Fprintf(r.w, "  %s\n", scope)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
