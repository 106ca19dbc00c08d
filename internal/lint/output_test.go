package lint

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	cfg := DefaultConfig()
	return Lint([]Input{{Name: "custom.css", Content: marker + ".goal { color: red; }\n.banner { color: blue; }"}}, cfg)
}

func noColorConfig() Config {
	cfg := DefaultConfig()
	cfg.NoColor = true
	return cfg
}

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{name: "first column", line: ".goal {", column: 1, want: "^"},
		{name: "spaces", line: "  padding: 4px;", column: 3, want: "  ^"},
		{name: "tabs kept", line: "\t\tpadding: 4px;", column: 3, want: "\t\t^"},
		{name: "past end", line: "ab", column: 10, want: "  ^"},
		{name: "no column", line: "ab", column: 0, want: "^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCaretIndicator(tt.line, tt.column))
		})
	}
}

func TestWriteOutputIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputIssues, noColorConfig()))

	out := buf.String()
	assert.Contains(t, out, `custom.css:2:1: short class name ".goal" is not rendered by the tip page, use ".DonateGoal_style__goal" (aliasname)`)
	assert.Contains(t, out, "\t.goal { color: red; }\n\t^\n")
	assert.Contains(t, out, `custom.css:3:1: class ".banner" does not exist in the widget markup (classname)`)
	assert.Contains(t, out, "2 issues (1 error, 1 warning):")
	assert.Contains(t, out, "* aliasname: 1\n* classname: 1\n")
	assert.Contains(t, out, "Hint:")
}

func TestWriteOutputCleanRun(t *testing.T) {
	var buf bytes.Buffer
	result := Lint(nil, DefaultConfig())
	require.NoError(t, WriteOutput(&buf, result, OutputIssues, noColorConfig()))
	assert.Equal(t, "\n0 issues:\n", buf.String())
}

func TestWriteOutputFull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputFull, noColorConfig()))

	out := buf.String()
	assert.Contains(t, out, "Widget CSS Statistics")
	assert.Contains(t, out, "Files Scanned:    1")
	assert.Contains(t, out, "Widget Coverage")
	assert.Contains(t, out, "[░░░░░░░░░░░░░░░░░░░░] 0.0%")
	assert.Contains(t, out, "- .DonateGoal_style__goal")
}

func TestWriteJSON(t *testing.T) {
	out := buildJSONOutput(sampleResult(), time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "2024-01-02T03:04:05Z", out.Timestamp)
	assert.Equal(t, 2, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.Errors)
	assert.Equal(t, ".DonateGoal_style__goal", out.Issues[0].Replacement)
	assert.Equal(t, ".goal { color: red; }", out.Issues[0].Source)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputJSON, noColorConfig()))
	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Issues, 2)
	assert.Len(t, decoded.Coverage, 9)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputMarkdown, noColorConfig()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Widget CSS Lint Report\n"))
	assert.Contains(t, out, "| `custom.css:2:1` | error | aliasname |")
	assert.Contains(t, out, "| `.DonateGoal_progress__done` | `.done` | 0 |")
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: OutputIssues},
		{in: "FULL", want: OutputFull},
		{in: "md", want: OutputMarkdown},
		{in: "json", want: OutputJSON},
		{in: "summary", want: OutputSummary},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
