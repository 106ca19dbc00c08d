package lint

import (
	"fmt"
	"io"
	"strings"
)

// VerboseReporter prints statistics and widget coverage.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter.
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics writes scan totals.
func (r *VerboseReporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Widget CSS Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	errs, warns := countSeverities(result.Issues)
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Rules:            %d\n", result.RulesScanned)
	fmt.Fprintf(r.w, "Class Selectors:  %d\n", result.ClassesFound)
	fmt.Fprintf(r.w, "Errors:           %d\n", errs)
	fmt.Fprintf(r.w, "Warnings:         %d\n", warns)
}

// PrintCoverage lists every widget class and what its rules style.
func (r *VerboseReporter) PrintCoverage(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Widget Coverage", r.useColors))
	fmt.Fprintln(r.w, "---------------")
	printProgressBar(r.w, result.CoveragePercentage())
	fmt.Fprintln(r.w, "")

	for _, c := range result.Coverage {
		mark := RenderStyle(StyleGray, "-", r.useColors)
		detail := "not styled"
		if c.Rules > 0 {
			mark = RenderStyle(StyleGreen, "✓", r.useColors)
			cats := make([]string, len(c.Categories))
			for i, cat := range c.Categories {
				cats[i] = string(cat)
			}
			detail = fmt.Sprintf("%s (%s)", pluralizeCount(c.Rules, "rule", "rules"), strings.Join(cats, ", "))
		}
		fmt.Fprintf(r.w, "%s %-32s %-10s %s\n", mark, c.Class, c.Friendly, detail)
	}
}

// PrintWarnings writes non-issue warnings such as unreadable files.
func (r *VerboseReporter) PrintWarnings(result Result) {
	if len(result.Warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func printProgressBar(w io.Writer, percentage float64) {
	const barWidth = 20
	filled := int(percentage / 100 * barWidth)

	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			sb.WriteString("█")
		} else {
			sb.WriteString("░")
		}
	}
	fmt.Fprintf(w, "%s] %.1f%%\n", sb.String(), percentage)
}
