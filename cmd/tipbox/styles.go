package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yacobolo/tipbox/internal/lint"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Foreground(lipgloss.Color("3")).
			Padding(0, 1).
			Width(72)

	plainBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1).
				Width(72)

	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderBanner boxes a warning. Without colors the box is kept and only
// the styling is dropped.
func renderBanner(text string, useColors bool) string {
	if !useColors {
		return plainBannerStyle.Render("! " + text)
	}
	return bannerStyle.Render("⚠ " + text)
}

func renderHeading(text string, useColors bool) string {
	return lint.RenderStyle(headingStyle, text, useColors)
}

func renderMuted(text string, useColors bool) string {
	return lint.RenderStyle(lint.StyleGray, text, useColors)
}

func renderOK(text string, useColors bool) string {
	return lint.RenderStyle(lint.StyleGreen, text, useColors)
}
