package lint

// Issue is a single finding, laid out like golangci-lint's JSON issues.
type Issue struct {
	FromLinter  string       `json:"FromLinter"`
	Text        string       `json:"Text"`
	Severity    string       `json:"Severity"`
	SourceLines []string     `json:"SourceLines"`
	Pos         IssuePos     `json:"Pos"`
	Replacement *Replacement `json:"Replacement,omitempty"`
}

// IssuePos is a 1-based file location.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Replacement suggests a fix for the text starting at Pos.
type Replacement struct {
	NewText      string `json:"NewText"`
	InlineLength int    `json:"InlineLength"`
}

// Severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter names
const (
	LinterClassName = "classname"
	LinterAlias     = "aliasname"
	LinterOverflow  = "overflow"
	LinterGoal      = "goallayout"
	LinterSyntax    = "syntax"
)

// Messages
const (
	IssueFriendlyClass   = "short class name %q is not rendered by the tip page, use %q"
	IssueUnknownWidget   = "unknown widget class %q"
	IssueForeignClass    = "class %q does not exist in the widget markup"
	IssueMissingOverflow = "missing %q block, long goal names may overflow the widget"
	IssueGoalLayout      = "layout property %q on the goal container can break the tip page"
	IssueSyntax          = "CSS syntax error: %v"
)

// PropertyCategory groups related CSS properties.
type PropertyCategory string

// Property categories
const (
	CategoryVisual     PropertyCategory = "Visual"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryVendor     PropertyCategory = "Vendor"
)

// ClassCoverage reports how a widget class is styled across the input.
type ClassCoverage struct {
	Class      string             `json:"class"`
	Friendly   string             `json:"friendly"`
	Rules      int                `json:"rules"`
	Categories []PropertyCategory `json:"categories"`
}

// Result is the outcome of a lint run.
type Result struct {
	Issues         []Issue
	Coverage       []ClassCoverage // in class table order
	FilesScanned   int
	RulesScanned   int
	ClassesFound   int // class selector occurrences
	TruncatedCount int
	Warnings       []string
}

// StyledClasses counts widget classes with at least one rule.
func (r *Result) StyledClasses() int {
	n := 0
	for _, c := range r.Coverage {
		if c.Rules > 0 {
			n++
		}
	}
	return n
}

// CoveragePercentage is the share of widget classes that are styled.
func (r *Result) CoveragePercentage() float64 {
	if len(r.Coverage) == 0 {
		return 0
	}
	return float64(r.StyledClasses()) / float64(len(r.Coverage)) * 100
}

// HasErrors reports whether any issue has error severity.
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Config controls checks and reporting.
type Config struct {
	MaxIssuesPerLinter int  // 0 = unlimited
	MaxSameIssues      int  // 0 = unlimited
	RequireOverflowFix bool // report a missing Fix overflow block
	PrintIssuedLines   bool
	PrintLinterName    bool
	UseColors          bool // force colors
	NoColor            bool // disable colors, wins over UseColors
}

// DefaultConfig returns the settings the CLI starts from.
func DefaultConfig() Config {
	return Config{
		RequireOverflowFix: true,
		PrintIssuedLines:   true,
		PrintLinterName:    true,
	}
}

// OutputFormat selects how results are written.
type OutputFormat string

const (
	// OutputIssues prints findings in golangci-lint format
	OutputIssues OutputFormat = "issues"
	// OutputSummary prints statistics and widget coverage only
	OutputSummary OutputFormat = "summary"
	// OutputFull prints issues followed by the summary
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data
	OutputJSON OutputFormat = "json"
	// OutputMarkdown writes a shareable report
	OutputMarkdown OutputFormat = "markdown"
)
