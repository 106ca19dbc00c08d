package lint

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ParseOutputFormat maps a flag value to a format. Empty means issues.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "issues":
		return OutputIssues, nil
	case "summary":
		return OutputSummary, nil
	case "full":
		return OutputFull, nil
	case "json":
		return OutputJSON, nil
	case "markdown", "md":
		return OutputMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want issues, summary, full, json or markdown)", s)
}

// WriteOutput writes result in format.
func WriteOutput(w io.Writer, result *Result, format OutputFormat, config Config) error {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verbose := NewVerboseReporter(w, shouldUseColors(config))
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintWarnings(*result)

	case OutputJSON:
		return WriteJSON(w, result)

	case OutputMarkdown:
		return WriteMarkdown(w, result)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

// JSONOutput is the JSON export schema.
type JSONOutput struct {
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	Summary   JSONSummary     `json:"summary"`
	Coverage  []ClassCoverage `json:"coverage"`
	Issues    []JSONIssue     `json:"issues"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// JSONSummary holds the counts.
type JSONSummary struct {
	TotalIssues     int     `json:"total_issues"`
	Errors          int     `json:"errors"`
	Warnings        int     `json:"warnings"`
	FilesScanned    int     `json:"files_scanned"`
	RulesScanned    int     `json:"rules_scanned"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// JSONIssue is one flattened issue.
type JSONIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Linter      string `json:"linter"`
	Source      string `json:"source,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildJSONOutput(result, time.Now()))
}

func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	errs, warns := countSeverities(result.Issues)

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		ji := JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
		}
		if len(issue.SourceLines) > 0 {
			ji.Source = issue.SourceLines[0]
		}
		if issue.Replacement != nil {
			ji.Replacement = issue.Replacement.NewText
		}
		issues[i] = ji
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:     len(result.Issues),
			Errors:          errs,
			Warnings:        warns,
			FilesScanned:    result.FilesScanned,
			RulesScanned:    result.RulesScanned,
			CoveragePercent: result.CoveragePercentage(),
		},
		Coverage: result.Coverage,
		Issues:   issues,
		Warnings: result.Warnings,
	}
}

// WriteMarkdown writes a report suitable for pasting into an issue.
func WriteMarkdown(w io.Writer, result *Result) error {
	var sb strings.Builder
	errs, warns := countSeverities(result.Issues)

	sb.WriteString("# Widget CSS Lint Report\n\n")
	fmt.Fprintf(&sb, "**%d issues** (%d errors, %d warnings) in %d files, %.1f%% of widget classes styled.\n\n",
		len(result.Issues), errs, warns, result.FilesScanned, result.CoveragePercentage())

	if len(result.Issues) > 0 {
		sb.WriteString("## Issues\n\n")
		sb.WriteString("| Location | Severity | Linter | Message |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "| `%s:%d:%d` | %s | %s | %s |\n",
				issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
				issue.Severity, issue.FromLinter, strings.ReplaceAll(issue.Text, "|", `\|`))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Coverage\n\n")
	sb.WriteString("| Class | Short name | Rules |\n")
	sb.WriteString("|---|---|---|\n")
	for _, c := range result.Coverage {
		fmt.Fprintf(&sb, "| `%s` | `%s` | %d |\n", c.Class, c.Friendly, c.Rules)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
