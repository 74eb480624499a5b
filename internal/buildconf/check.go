package buildconf

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckResult holds everything a check run produced.
type CheckResult struct {
	Configs      []*Config // successfully loaded variants, in argument order
	Issues       []Issue
	Scopes       []ContentScope
	ErrorCount   int
	WarningCount int
}

// Check loads every variant concurrently, validates each one and compares
// them. Files that fail to load are reported as schema issues rather than
// aborting the run; the error is non-nil only if ctx is cancelled.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	configs := make([]*Config, len(paths))
	loadIssues := make([]*Issue, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := Load(p)
			if err != nil {
				issue := loadIssue(p, err)
				loadIssues[i] = &issue
				return nil
			}
			configs[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CheckResult{}
	for i := range paths {
		if loadIssues[i] != nil {
			result.Issues = append(result.Issues, *loadIssues[i])
			continue
		}
		result.Configs = append(result.Configs, configs[i])
		result.Issues = append(result.Issues, Validate(configs[i], opts)...)
	}
	result.Issues = append(result.Issues, CompareVariants(result.Configs)...)
	result.Scopes = ContentScopes(result.Configs)
	result.ErrorCount, result.WarningCount = CountSeverity(result.Issues)

	return result, nil
}

func loadIssue(path string, err error) Issue {
	issue := Issue{
		Rule:     RuleSchema,
		Text:     err.Error(),
		Severity: SeverityError,
		Pos:      IssuePos{Filename: path},
	}
	var serr *SyntaxError
	if errors.As(err, &serr) {
		issue.Text = serr.Msg
		issue.Pos.Line = serr.Line
		if serr.Line > 0 {
			issue.Pos.Column = 1
		}
	}
	return issue
}
