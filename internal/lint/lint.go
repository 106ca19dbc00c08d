package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yacobolo/tipbox"
)

// Input is one stylesheet to check.
type Input struct {
	Name    string
	Content string
}

// goalLayoutAllowed are the layout properties the overflow fix itself sets.
var goalLayoutAllowed = map[string]bool{
	"width":  true,
	"margin": true,
}

// Lint checks inputs and aggregates the findings.
func Lint(inputs []Input, config Config) *Result {
	table := tipbox.ClassTable()
	result := &Result{Coverage: make([]ClassCoverage, len(table))}
	index := make(map[string]int, len(table))
	categories := make([]map[PropertyCategory]bool, len(table))
	for i, p := range table {
		result.Coverage[i] = ClassCoverage{Class: p.Canonical, Friendly: p.Friendly}
		index[strings.TrimPrefix(p.Canonical, ".")] = i
		categories[i] = make(map[PropertyCategory]bool)
	}

	for _, in := range inputs {
		sheet := Parse(in.Content)
		lines := strings.Split(in.Content, "\n")
		result.FilesScanned++
		result.RulesScanned += len(sheet.Rules)

		add := func(linter, severity, text string, line, col int) *Issue {
			issue := Issue{
				FromLinter: linter,
				Text:       text,
				Severity:   severity,
				Pos:        IssuePos{Filename: in.Name, Line: line, Column: col},
			}
			if line >= 1 && line <= len(lines) {
				issue.SourceLines = []string{lines[line-1]}
			}
			result.Issues = append(result.Issues, issue)
			return &result.Issues[len(result.Issues)-1]
		}

		if sheet.Err != nil {
			add(LinterSyntax, SeverityError, fmt.Sprintf(IssueSyntax, sheet.Err), 1, 1)
		}

		for _, rule := range sheet.Rules {
			styled := make(map[int]bool)
			for _, ref := range rule.Selectors {
				result.ClassesFound++
				if tipbox.IsCanonicalClass(ref.Name) {
					styled[index[ref.Name]] = true
					continue
				}
				if canonical, ok := tipbox.CanonicalFor("." + ref.Name); ok {
					issue := add(LinterAlias, SeverityError,
						fmt.Sprintf(IssueFriendlyClass, "."+ref.Name, canonical), ref.Line, ref.Column)
					issue.Replacement = &Replacement{NewText: canonical, InlineLength: len(ref.Name) + 1}
					continue
				}
				if strings.HasPrefix(ref.Name, "DonateGoal_") {
					add(LinterClassName, SeverityError, fmt.Sprintf(IssueUnknownWidget, "."+ref.Name), ref.Line, ref.Column)
					continue
				}
				add(LinterClassName, SeverityWarning, fmt.Sprintf(IssueForeignClass, "."+ref.Name), ref.Line, ref.Column)
			}

			for i := range styled {
				result.Coverage[i].Rules++
				for _, c := range categoriesOf(rule.Declarations) {
					categories[i][c] = true
				}
			}

			if isGoalOnly(rule) {
				for _, d := range rule.Declarations {
					if categorizeProperty(d.Property) == CategoryLayout && !goalLayoutAllowed[d.Property] {
						add(LinterGoal, SeverityWarning, fmt.Sprintf(IssueGoalLayout, d.Property), d.Line, d.Column)
					}
				}
			}
		}

		if config.RequireOverflowFix && strings.TrimSpace(in.Content) != "" && !hasOverflowMarker(sheet) {
			add(LinterOverflow, SeverityWarning, fmt.Sprintf(IssueMissingOverflow, tipbox.FixOverflowMarker), 1, 1)
		}
	}

	for i := range result.Coverage {
		for c := range categories[i] {
			result.Coverage[i].Categories = append(result.Coverage[i].Categories, c)
		}
		sort.Slice(result.Coverage[i].Categories, func(a, b int) bool {
			return result.Coverage[i].Categories[a] < result.Coverage[i].Categories[b]
		})
	}

	sortIssues(result.Issues)
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
	return result
}

// LintFiles expands doublestar patterns and lints every matched file.
func LintFiles(patterns []string, config Config) (*Result, error) {
	var inputs []Input
	var warnings []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			warnings = append(warnings, fmt.Sprintf("No files match %s", pattern))
		}
		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true
			// #nosec G304 - path comes from the command line
			content, err := os.ReadFile(path)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", path, err))
				continue
			}
			inputs = append(inputs, Input{Name: filepath.ToSlash(path), Content: string(content)})
		}
	}

	result := Lint(inputs, config)
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

// isGoalOnly reports whether the goal container is the rule's only class.
func isGoalOnly(rule Rule) bool {
	if len(rule.Selectors) != 1 {
		return false
	}
	return "."+rule.Selectors[0].Name == tipbox.ClassGoal
}

func hasOverflowMarker(sheet *Stylesheet) bool {
	for _, c := range sheet.Comments {
		if strings.Contains(strings.ToLower(c.Text), "fix overflow") {
			return true
		}
	}
	return false
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies max-issues-per-linter and max-same-issues
func limitIssues(issues []Issue, config Config) ([]Issue, int) {
	original := len(issues)

	var filtered []Issue
	perLinter := make(map[string]int)
	perText := make(map[string]int)
	for _, issue := range issues {
		if config.MaxIssuesPerLinter > 0 && perLinter[issue.FromLinter] >= config.MaxIssuesPerLinter {
			continue
		}
		if config.MaxSameIssues > 0 && perText[issue.Text] >= config.MaxSameIssues {
			continue
		}
		perLinter[issue.FromLinter]++
		perText[issue.Text]++
		filtered = append(filtered, issue)
	}

	return filtered, original - len(filtered)
}
