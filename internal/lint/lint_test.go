package lint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/tipbox"
)

func TestParse(t *testing.T) {
	css := ".DonateGoal_style__goal {\n  color: red;\n}\n\n/* Fix overflow */\n.goal, .DonateGoal_progress__done::after { padding: 2px }"
	sheet := Parse(css)
	require.NoError(t, sheet.Err)
	require.Len(t, sheet.Rules, 2)

	first := sheet.Rules[0]
	assert.Equal(t, []ClassRef{{Name: "DonateGoal_style__goal", Line: 1, Column: 1}}, first.Selectors)
	assert.Equal(t, []Declaration{{Property: "color", Value: "red", Line: 2, Column: 3}}, first.Declarations)

	require.Len(t, sheet.Comments, 1)
	assert.Equal(t, Comment{Text: "/* Fix overflow */", Line: 5, Column: 1}, sheet.Comments[0])

	second := sheet.Rules[1]
	require.Len(t, second.Selectors, 2)
	assert.Equal(t, ClassRef{Name: "goal", Line: 6, Column: 1}, second.Selectors[0])
	assert.Equal(t, ClassRef{Name: "DonateGoal_progress__done", Line: 6, Column: 8}, second.Selectors[1])
	require.Len(t, second.Declarations, 1)
	assert.Equal(t, "padding", second.Declarations[0].Property)
	assert.Equal(t, "2px", second.Declarations[0].Value)
	line6 := strings.Split(css, "\n")[5]
	assert.Equal(t, strings.Index(line6, "padding")+1, second.Declarations[0].Column)
}

func TestParseAtRules(t *testing.T) {
	css := `@import url("x.css");
@media (max-width: 600px) {
  .DonateGoal_style__name { font-size: 10pt; }
}
@keyframes glow { from { opacity: 0.5; } to { opacity: 1; } }
.DonateGoal_progress__progress { height: 20px; }`

	sheet := Parse(css)
	require.NoError(t, sheet.Err)

	var names []string
	for _, r := range sheet.Rules {
		for _, s := range r.Selectors {
			names = append(names, s.Name)
		}
	}
	assert.Equal(t, []string{"DonateGoal_style__name", "DonateGoal_progress__progress"}, names)
}

func TestParseNumbersAreNotClasses(t *testing.T) {
	sheet := Parse(".DonateGoal_progress__done { opacity: .5; transition: width .3s; }")
	require.Len(t, sheet.Rules, 1)
	assert.Len(t, sheet.Rules[0].Selectors, 1)
	assert.Len(t, sheet.Rules[0].Declarations, 2)
}

const marker = "/* Fix overflow */\n"

func TestLintChecks(t *testing.T) {
	tests := []struct {
		name       string
		css        string
		wantLinter string
		wantSev    string
		wantText   string
		wantLine   int
		wantCol    int
	}{
		{
			name:       "friendly name",
			css:        marker + ".goal { color: red; }",
			wantLinter: LinterAlias,
			wantSev:    SeverityError,
			wantText:   `short class name ".goal" is not rendered by the tip page, use ".DonateGoal_style__goal"`,
			wantLine:   2,
			wantCol:    1,
		},
		{
			name:       "unknown widget class",
			css:        marker + "a, .DonateGoal_style__goals { color: red; }",
			wantLinter: LinterClassName,
			wantSev:    SeverityError,
			wantText:   `unknown widget class ".DonateGoal_style__goals"`,
			wantLine:   2,
			wantCol:    4,
		},
		{
			name:       "foreign class",
			css:        marker + ".banner { color: red; }",
			wantLinter: LinterClassName,
			wantSev:    SeverityWarning,
			wantText:   `class ".banner" does not exist in the widget markup`,
			wantLine:   2,
			wantCol:    1,
		},
		{
			name:       "missing overflow fix",
			css:        ".DonateGoal_progress__done { color: red; }",
			wantLinter: LinterOverflow,
			wantSev:    SeverityWarning,
			wantText:   `missing "/* Fix overflow */" block, long goal names may overflow the widget`,
			wantLine:   1,
			wantCol:    1,
		},
		{
			name:       "layout on goal",
			css:        marker + ".DonateGoal_style__goal {\n  width: 98%;\n  padding: 4px;\n}",
			wantLinter: LinterGoal,
			wantSev:    SeverityWarning,
			wantText:   `layout property "padding" on the goal container can break the tip page`,
			wantLine:   4,
			wantCol:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lint([]Input{{Name: "custom.css", Content: tt.css}}, DefaultConfig())
			require.Len(t, result.Issues, 1)

			issue := result.Issues[0]
			assert.Equal(t, tt.wantLinter, issue.FromLinter)
			assert.Equal(t, tt.wantSev, issue.Severity)
			assert.Equal(t, tt.wantText, issue.Text)
			assert.Equal(t, IssuePos{Filename: "custom.css", Line: tt.wantLine, Column: tt.wantCol}, issue.Pos)
			require.Len(t, issue.SourceLines, 1)
		})
	}
}

func TestLintFriendlyReplacement(t *testing.T) {
	result := Lint([]Input{{Name: "a.css", Content: marker + ".done::after { content: 'x'; }"}}, DefaultConfig())
	require.Len(t, result.Issues, 1)
	require.NotNil(t, result.Issues[0].Replacement)
	assert.Equal(t, tipbox.ClassProgressDone, result.Issues[0].Replacement.NewText)
	assert.Equal(t, len(".done"), result.Issues[0].Replacement.InlineLength)
}

func TestLintGeneratedAndBuiltinCSSIsClean(t *testing.T) {
	inputs := []Input{{Name: "generated.css", Content: tipbox.Generate(tipbox.DefaultStyleModel())}}
	result := Lint(inputs, DefaultConfig())
	assert.Empty(t, result.Issues)
	assert.Equal(t, 4, result.StyledClasses())
	assert.False(t, result.HasErrors())

	for _, tpl := range tipbox.BuiltinTemplates() {
		result := Lint([]Input{{Name: tpl.ID, Content: tpl.CSS}}, DefaultConfig())
		assert.False(t, result.HasErrors(), "template %s: %v", tpl.ID, result.Issues)
	}
}

func TestLintCoverage(t *testing.T) {
	css := marker + ".DonateGoal_style__goal { color: red; }\n.DonateGoal_style__goal { width: 98%; text-align: center; }"
	result := Lint([]Input{{Name: "a.css", Content: css}}, DefaultConfig())

	require.Len(t, result.Coverage, len(tipbox.ClassTable()))
	goal := result.Coverage[0]
	assert.Equal(t, tipbox.ClassGoal, goal.Class)
	assert.Equal(t, ".goal", goal.Friendly)
	assert.Equal(t, 2, goal.Rules)
	assert.Equal(t, []PropertyCategory{CategoryLayout, CategoryTypography, CategoryVisual}, goal.Categories)
	assert.InDelta(t, 100.0/9, result.CoveragePercentage(), 0.001)
}

func TestLintOverflowCheckCanBeDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireOverflowFix = false
	result := Lint([]Input{{Name: "a.css", Content: ".DonateGoal_style__goal { color: red; }"}}, cfg)
	assert.Empty(t, result.Issues)

	result = Lint([]Input{{Name: "empty.css", Content: "  \n"}}, DefaultConfig())
	assert.Empty(t, result.Issues)
}

func TestLimitIssues(t *testing.T) {
	css := marker + ".a {}\n.b {}\n.c {}\n.goal {}\n.goal {}"
	cfg := DefaultConfig()
	cfg.MaxIssuesPerLinter = 2
	cfg.MaxSameIssues = 1

	result := Lint([]Input{{Name: "a.css", Content: css}}, cfg)
	assert.Equal(t, 2, result.TruncatedCount)
	require.Len(t, result.Issues, 3)
	assert.Equal(t, ".a", result.Issues[0].SourceLines[0][:2])
	assert.Equal(t, LinterAlias, result.Issues[2].FromLinter)
}

func TestLintFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "themes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes", "a.css"), []byte(marker+".banner {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte(tipbox.Generate(tipbox.DefaultStyleModel())), 0o644))

	result, err := LintFiles([]string{filepath.Join(dir, "**", "*.css"), filepath.Join(dir, "missing", "*.css")}, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	require.Len(t, result.Issues, 1)
	assert.True(t, strings.HasSuffix(result.Issues[0].Pos.Filename, "themes/a.css"))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "No files match")
}
