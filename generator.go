package tipbox

import (
	"fmt"
	"strings"
)

// FixOverflowMarker precedes the overflow-fix block. Tools that rewrite
// widget CSS must keep it.
const FixOverflowMarker = "/* Fix overflow */"

// Generate renders the widget CSS for a style model.
// It is pure: the same model always yields the same bytes.
func Generate(m StyleModel) string {
	var sb strings.Builder

	// 1. Label and outer container text color
	writeRule(&sb, ClassProgressText, "color: "+m.ProgressTextColor)
	writeRule(&sb, ClassGoal, "color: "+m.ProgressTextColor)

	// 2. Decorative glyph after the filled portion
	writeRule(&sb, ClassProgressDone+"::after",
		`content: "`+m.Emoji+`"`,
		"float: right",
		"margin-right: "+m.EmojiPosition,
		"font-size: "+m.EmojiSize,
	)

	// 3. Track
	writeRule(&sb, ClassProgress,
		fmt.Sprintf("background: linear-gradient(180deg, %s, %s)", m.BarBackground, m.BarBackground2),
		"border-radius: "+m.BarRoundness,
		fmt.Sprintf("border: %s solid %s", m.BarBorder, m.BarBorderColor),
	)

	// 4. Filled portion
	writeRule(&sb, ClassProgressDone,
		fmt.Sprintf("background: linear-gradient(180deg, %s, %s)", m.ProgressBackground, m.ProgressBackground2),
		fmt.Sprintf("border-right: %s solid %s", m.ProgressRightBorder, m.ProgressRightBorderColor),
		"border-radius: "+m.BarRoundness,
		"height: 100% !important",
	)

	// 5. Overflow fix goes last
	if m.FixOverflow {
		sb.WriteString(FixOverflowMarker)
		sb.WriteString("\n")
		writeRule(&sb, ClassGoal, "width: 98%", "margin: auto")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// writeRule appends one rule block followed by a blank line.
func writeRule(sb *strings.Builder, selector string, declarations ...string) {
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, d := range declarations {
		sb.WriteString("  ")
		sb.WriteString(d)
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n\n")
}
