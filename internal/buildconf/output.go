package buildconf

import (
	"encoding/json"
	"io"
	"time"
)

// DetermineOutputFormat selects the report format from the flag value.
// Unknown values fall back to issues.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)
	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintScopes(result.Scopes)
		reporter.PrintSummary(*result)
		return nil
	}
}

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Summary   JSONSummary   `json:"summary"`
	Variants  []JSONVariant `json:"variants"`
	Issues    []JSONIssue   `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues    int `json:"total_issues"`
	Errors         int `json:"errors"`
	Warnings       int `json:"warnings"`
	ConfigsChecked int `json:"configs_checked"`
}

// JSONVariant describes one loaded configuration
type JSONVariant struct {
	Path    string   `json:"path"`
	Content []string `json:"content"`
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Plugins []string `json:"plugins"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Rule     string   `json:"rule"`
	Field    string   `json:"field,omitempty"`
	Detail   []string `json:"detail,omitempty"`
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(result *CheckResult) JSONOutput {
	SortIssues(result.Issues)

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Rule:     issue.Rule,
			Field:    issue.Field,
			Detail:   issue.Detail,
		}
	}

	variants := make([]JSONVariant, len(result.Configs))
	for i, cfg := range result.Configs {
		plugins := make([]string, len(cfg.Plugins))
		for j, p := range cfg.Plugins {
			plugins[j] = p.ID
		}
		variants[i] = JSONVariant{
			Path:    cfg.Path,
			Content: append([]string{}, cfg.Content...),
			Input:   cfg.Input,
			Output:  cfg.Output,
			Plugins: plugins,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:    len(result.Issues),
			Errors:         result.ErrorCount,
			Warnings:       result.WarningCount,
			ConfigsChecked: len(result.Configs),
		},
		Variants: variants,
		Issues:   issues,
	}
}
