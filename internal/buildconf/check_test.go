package buildconf

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_KnownVariants(t *testing.T) {
	result, err := Check(context.Background(), variantFiles, Options{})
	require.NoError(t, err)

	assert.Len(t, result.Configs, 3)
	assert.Empty(t, result.Issues)
	assert.Zero(t, result.ErrorCount)
	assert.Zero(t, result.WarningCount)
	require.Len(t, result.Scopes, 3)
	for i, scope := range result.Scopes {
		assert.Equal(t, variantFiles[i], scope.Path)
	}
}

func TestCheck_LoadFailuresBecomeIssues(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.js")
	require.NoError(t, os.WriteFile(broken, []byte("module.exports = {\n  input: base,\n}"), 0644))
	diverging := filepath.Join(dir, "diverging.js")
	require.NoError(t, os.WriteFile(diverging, []byte(`module.exports = {
  content: ['templates/**/*.html'],
  input: 'tailwind/base.css',
  output: 'static/css/styles.css',
  theme: { extend: {} },
  plugins: [],
}`), 0644))

	paths := []string{variantFiles[0], broken, diverging, filepath.Join(dir, "missing.js")}
	result, err := Check(context.Background(), paths, Options{})
	require.NoError(t, err)

	assert.Len(t, result.Configs, 2)
	assert.Equal(t, 3, result.ErrorCount)

	var rules []string
	for _, issue := range result.Issues {
		rules = append(rules, issue.Rule)
		if issue.Pos.Filename == broken {
			assert.Equal(t, 2, issue.Pos.Line)
			assert.Contains(t, issue.Text, `unsupported expression starting at "base"`)
		}
		if issue.Rule == RuleVariantIODivergence {
			assert.Equal(t, diverging, issue.Pos.Filename)
			assert.Equal(t, 3, issue.Pos.Line)
		}
	}
	assert.ElementsMatch(t, []string{RuleSchema, RuleSchema, RuleVariantIODivergence}, rules)
}

func TestCheck_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, variantFiles, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteOutput_JSON(t *testing.T) {
	result, err := Check(context.Background(), variantFiles[:2], Options{})
	require.NoError(t, err)
	result.Issues = append(result.Issues, Issue{
		Rule: RuleContentNoMatch, Text: "no files", Severity: SeverityWarning, Field: FieldContent,
		Pos: IssuePos{Filename: variantFiles[1], Line: 3, Column: 1},
	})
	result.WarningCount = 1

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, DetermineOutputFormat("json"), ReportConfig{}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, JSONSummary{TotalIssues: 1, Warnings: 1, ConfigsChecked: 2}, out.Summary)
	require.Len(t, out.Variants, 2)
	assert.Equal(t, "base.css", out.Variants[0].Input)
	assert.Equal(t, []string{}, out.Variants[0].Plugins)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, JSONIssue{
		File: variantFiles[1], Line: 3, Column: 1, Severity: SeverityWarning,
		Message: "no files", Rule: RuleContentNoMatch, Field: FieldContent,
	}, out.Issues[0])
}

func TestWriteOutput_Issues(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")

	result, err := Check(context.Background(), variantFiles, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, DetermineOutputFormat(""), ReportConfig{PrintRuleName: true}))
	assert.Contains(t, buf.String(), "Content scope per variant:")
	assert.Contains(t, buf.String(), "3 configs checked, no issues")
}

func TestDetermineOutputFormat(t *testing.T) {
	assert.Equal(t, OutputJSON, DetermineOutputFormat("json"))
	assert.Equal(t, OutputIssues, DetermineOutputFormat("issues"))
	assert.Equal(t, OutputIssues, DetermineOutputFormat("bogus"))
}
