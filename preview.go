package tipbox

import (
	"html/template"
	"io"
	"strings"
)

// WidgetBaseCSS is the stylesheet the tip page ships for the widget.
// Custom CSS is layered on top of it.
const WidgetBaseCSS = `.DonateGoal_progress__progress {
  background: linear-gradient(180deg, #aaa, #888);
  box-shadow: 0 0 10px #000;
  height: 42px;
  line-height: 42px;
  position: relative;
  width: 100%
}

.DonateGoal_progress__done {
  background: linear-gradient(180deg, #71e251, #509e39);
  border-right: 2px solid #444;
  height: 42px;
  left: 0;
  position: absolute;
  top: 0;
  transition: width 1s ease-out;
  width: 30%;
}

.DonateGoal_progress__text {
  position: relative
}

.DonateGoal_style__goal {
  color: #fff;
  font-size: 14pt;
  text-align: center;
  text-shadow: #000 0 0 20px
}

.DonateGoal_style__name {
  margin-bottom: 10px
}

.DonateGoal_style__legend {
  display: flex;
  flex-direction: row
}

.DonateGoal_style__deadline,
.DonateGoal_style__end,
.DonateGoal_style__start {
  flex: 1
}

.DonateGoal_style__start {
  text-align: left
}

.DonateGoal_style__end {
  text-align: right
}

.DonateGoal_style__deadline {
  text-align: center
}`

// WidgetSampleHTML is the sample markup the preview renders.
const WidgetSampleHTML = `<div class="DonateGoal_style__goal">
  <div class="DonateGoal_style__name">Tip box</div>
  <div class="DonateGoal_progress__progress">
    <div class="DonateGoal_progress__done"></div>
    <div class="DonateGoal_progress__text">฿30 (30%)</div>
  </div>
  <div class="DonateGoal_style__legend">
    <div class="DonateGoal_style__start">฿0</div>
    <div class="DonateGoal_style__deadline"><time>4 weeks</time></div>
    <div class="DonateGoal_style__end">฿100</div>
  </div>
</div>`

// PreviewOptions controls the preview page.
type PreviewOptions struct {
	Title    string
	DarkMode bool
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; padding: 2rem; font-family: sans-serif; background: {{if .DarkMode}}#1f1f23{{else}}#f4f4f5{{end}}; }
.preview { max-width: 56rem; margin: 0 auto; }
</style>
<style>
{{.Base}}
</style>
<style>
{{.Custom}}
</style>
</head>
<body>
<div class="preview">
{{.Sample}}
</div>
</body>
</html>
`))

// RenderPreview writes a standalone HTML page showing the widget styled by
// cssText. The CSS is injected verbatim after the base stylesheet.
func RenderPreview(w io.Writer, cssText string, opts PreviewOptions) error {
	if opts.Title == "" {
		opts.Title = "Tip box preview"
	}
	return previewTemplate.Execute(w, struct {
		Title    string
		DarkMode bool
		Base     template.CSS
		Custom   template.CSS
		Sample   template.HTML
	}{
		Title:    opts.Title,
		DarkMode: opts.DarkMode,
		Base:     template.CSS(WidgetBaseCSS),
		Custom:   template.CSS(cssText),
		Sample:   template.HTML(WidgetSampleHTML),
	})
}

// PreviewHTML is RenderPreview into a string.
func PreviewHTML(cssText string, opts PreviewOptions) (string, error) {
	var sb strings.Builder
	if err := RenderPreview(&sb, cssText, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
