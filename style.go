package tipbox

import (
	json "github.com/goccy/go-json"
)

// StyleModel holds the basic-mode style parameters of the widget.
// Every field except FixOverflow is a CSS fragment interpolated as-is.
type StyleModel struct {
	BarBackground  string `json:"barBackground"`  // Track gradient, first stop
	BarBackground2 string `json:"barBackground2"` // Track gradient, second stop
	BarRoundness   string `json:"barRoundness"`   // Shared by track and filled portion
	BarBorder      string `json:"barBorder"`      // Track border width
	BarBorderColor string `json:"barBorderColor"`

	ProgressBackground       string `json:"progressBackground"`  // Filled gradient, first stop
	ProgressBackground2      string `json:"progressBackground2"` // Filled gradient, second stop
	ProgressTextColor        string `json:"progressTextColor"`   // Label and outer container
	ProgressRightBorder      string `json:"progressRightBorder"`
	ProgressRightBorderColor string `json:"progressRightBorderColor"`

	Emoji         string `json:"emoji"` // Empty is valid: renders nothing
	EmojiPosition string `json:"emojiPosition"`
	EmojiSize     string `json:"emojiSize"`

	FixOverflow bool `json:"fixOverflow"`
}

// DefaultStyleModel returns the style model of the "Default" template.
func DefaultStyleModel() StyleModel {
	return StyleModel{
		BarBackground:            "#aaaaaa",
		BarBackground2:           "#888888",
		BarRoundness:             "0px",
		BarBorder:                "0px",
		BarBorderColor:           "#ffffff",
		ProgressBackground:       "#71e251",
		ProgressBackground2:      "#509e39",
		ProgressTextColor:        "#ffffff",
		ProgressRightBorder:      "2px",
		ProgressRightBorderColor: "#444444",
		Emoji:                    "",
		EmojiPosition:            "0px",
		EmojiSize:                "24pt",
		FixOverflow:              true,
	}
}

// Complete returns a copy of m with every empty field taken from the
// defaults. Emoji is left untouched because the empty glyph is a real choice.
func (m StyleModel) Complete() StyleModel {
	d := DefaultStyleModel()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.BarBackground, d.BarBackground)
	fill(&m.BarBackground2, d.BarBackground2)
	fill(&m.BarRoundness, d.BarRoundness)
	fill(&m.BarBorder, d.BarBorder)
	fill(&m.BarBorderColor, d.BarBorderColor)
	fill(&m.ProgressBackground, d.ProgressBackground)
	fill(&m.ProgressBackground2, d.ProgressBackground2)
	fill(&m.ProgressTextColor, d.ProgressTextColor)
	fill(&m.ProgressRightBorder, d.ProgressRightBorder)
	fill(&m.ProgressRightBorderColor, d.ProgressRightBorderColor)
	fill(&m.EmojiPosition, d.EmojiPosition)
	fill(&m.EmojiSize, d.EmojiSize)
	return m
}

// UnmarshalJSON decodes a persisted model. Keys missing from the record
// keep their default values, so older or partial records load complete.
func (m *StyleModel) UnmarshalJSON(data []byte) error {
	type plain StyleModel
	decoded := plain(DefaultStyleModel())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = StyleModel(decoded).Complete()
	return nil
}

// StyleField describes one editable field for form-style editors.
type StyleField struct {
	Key   string // JSON name, also accepted by Set
	Label string
	Group string
}

// StyleFields lists the string fields in the order the basic editor shows them.
var StyleFields = []StyleField{
	{Key: "barBackground", Label: "Background", Group: "Progress bar"},
	{Key: "barBackground2", Label: "Background (gradient end)", Group: "Progress bar"},
	{Key: "barRoundness", Label: "Roundness", Group: "Progress bar"},
	{Key: "barBorder", Label: "Border width", Group: "Progress bar"},
	{Key: "barBorderColor", Label: "Border color", Group: "Progress bar"},
	{Key: "progressBackground", Label: "Background", Group: "Progress"},
	{Key: "progressBackground2", Label: "Background (gradient end)", Group: "Progress"},
	{Key: "progressTextColor", Label: "Text color", Group: "Progress"},
	{Key: "progressRightBorder", Label: "Divider width", Group: "Progress"},
	{Key: "progressRightBorderColor", Label: "Divider color", Group: "Progress"},
	{Key: "emoji", Label: "Emoji", Group: "Emoji"},
	{Key: "emojiPosition", Label: "Position", Group: "Emoji"},
	{Key: "emojiSize", Label: "Size", Group: "Emoji"},
}

// Field returns a pointer to the string field named by its JSON key.
func (m *StyleModel) Field(key string) (*string, bool) {
	switch key {
	case "barBackground":
		return &m.BarBackground, true
	case "barBackground2":
		return &m.BarBackground2, true
	case "barRoundness":
		return &m.BarRoundness, true
	case "barBorder":
		return &m.BarBorder, true
	case "barBorderColor":
		return &m.BarBorderColor, true
	case "progressBackground":
		return &m.ProgressBackground, true
	case "progressBackground2":
		return &m.ProgressBackground2, true
	case "progressTextColor":
		return &m.ProgressTextColor, true
	case "progressRightBorder":
		return &m.ProgressRightBorder, true
	case "progressRightBorderColor":
		return &m.ProgressRightBorderColor, true
	case "emoji":
		return &m.Emoji, true
	case "emojiPosition":
		return &m.EmojiPosition, true
	case "emojiSize":
		return &m.EmojiSize, true
	}
	return nil, false
}
