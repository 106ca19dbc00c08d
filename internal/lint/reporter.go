package lint

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter prints issues in golangci-lint format.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors resolves the color setting against the environment
func shouldUseColors(config Config) bool {
	if config.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if config.UseColors {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues writes every issue as file:line:col: message (linter).
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == SeverityError {
		text = RenderStyle(StyleRed, text, r.useColors)
	}
	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator aligns "^" under column, keeping tabs from the source
// line so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary writes the issue counts.
func (r *Reporter) PrintSummary(result Result) {
	total := len(result.Issues)
	errs, warns := countSeverities(result.Issues)

	fmt.Fprintln(r.w, "")
	head := pluralizeCount(total, "issue", "issues")
	var parts []string
	if errs > 0 && warns > 0 {
		parts = append(parts,
			pluralizeCount(errs, "error", "errors")+", "+pluralizeCount(warns, "warning", "warnings"))
	}
	if result.TruncatedCount > 0 {
		parts = append(parts, pluralizeCount(result.TruncatedCount, "issue", "issues")+" truncated")
	}
	if len(parts) > 0 {
		head += " (" + strings.Join(parts, "; ") + ")"
	}
	if total == 0 {
		head = RenderStyle(StyleGreen, head, r.useColors)
	}
	fmt.Fprintf(r.w, "%s:\n", head)

	counts := make(map[string]int)
	for _, issue := range result.Issues {
		counts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(counts))
	for l := range counts {
		linters = append(linters, l)
	}
	sort.Strings(linters)
	for _, l := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", l, counts[l])
	}

	if total > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --format full to see widget coverage", r.useColors))
	}
}

func countSeverities(issues []Issue) (errs, warns int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	return errs, warns
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
