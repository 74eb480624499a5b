package buildconf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// StylesheetReport summarises an input stylesheet.
type StylesheetReport struct {
	Rules      int      // rulesets and at-rule blocks
	Directives []string // "@tailwind base", "@import \"fonts.css\""
	Errors     []*parse.Error
}

// HasBuildDirectives reports whether the stylesheet pulls in generated layers.
func (r StylesheetReport) HasBuildDirectives() bool {
	return len(r.Directives) > 0
}

// buildDirectives are at-rules the build tool expands.
var buildDirectives = map[string]bool{
	"tailwind": true,
	"import":   true,
	"config":   true,
}

// InspectStylesheet parses a CSS file and collects build directives and
// recoverable syntax errors.
func InspectStylesheet(path string) (StylesheetReport, error) {
	var report StylesheetReport

	src, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}

	p := css.NewParser(parse.NewInputBytes(src), false)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			var perr *parse.Error
			if errors.As(p.Err(), &perr) {
				report.Errors = append(report.Errors, perr)
				continue
			}
			if err := p.Err(); err != nil && err != io.EOF {
				return report, fmt.Errorf("parsing %s: %w", path, err)
			}
			break
		}

		switch gt {
		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			name := strings.ToLower(strings.TrimPrefix(string(data), "@"))
			if buildDirectives[name] {
				report.Directives = append(report.Directives, strings.TrimSpace("@"+name+" "+joinValues(p.Values())))
			}
			if gt == css.BeginAtRuleGrammar {
				report.Rules++
			}
		case css.BeginRulesetGrammar:
			report.Rules++
		}
	}

	return report, nil
}

func joinValues(values []css.Token) string {
	var b strings.Builder
	for _, v := range values {
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}
