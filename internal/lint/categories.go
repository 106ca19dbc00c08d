package lint

import (
	"sort"
	"strings"
)

// propertyCategories maps CSS property names to categories
var propertyCategories = map[string]PropertyCategory{
	"background":       CategoryVisual,
	"background-color": CategoryVisual,
	"background-image": CategoryVisual,
	"color":            CategoryVisual,
	"border":           CategoryVisual,
	"border-color":     CategoryVisual,
	"border-radius":    CategoryVisual,
	"border-right":     CategoryVisual,
	"box-shadow":       CategoryVisual,
	"opacity":          CategoryVisual,
	"outline":          CategoryVisual,
	"content":          CategoryVisual,

	"display":        CategoryLayout,
	"position":       CategoryLayout,
	"top":            CategoryLayout,
	"left":           CategoryLayout,
	"right":          CategoryLayout,
	"bottom":         CategoryLayout,
	"width":          CategoryLayout,
	"height":         CategoryLayout,
	"max-width":      CategoryLayout,
	"min-width":      CategoryLayout,
	"max-height":     CategoryLayout,
	"min-height":     CategoryLayout,
	"margin":         CategoryLayout,
	"padding":        CategoryLayout,
	"float":          CategoryLayout,
	"overflow":       CategoryLayout,
	"z-index":        CategoryLayout,
	"gap":            CategoryLayout,
	"flex":           CategoryLayout,
	"flex-direction": CategoryLayout,
	"box-sizing":     CategoryLayout,

	"font":           CategoryTypography,
	"font-family":    CategoryTypography,
	"font-size":      CategoryTypography,
	"font-weight":    CategoryTypography,
	"font-style":     CategoryTypography,
	"line-height":    CategoryTypography,
	"letter-spacing": CategoryTypography,
	"text-align":     CategoryTypography,
	"text-shadow":    CategoryTypography,
	"text-transform": CategoryTypography,

	"transition":      CategoryEffects,
	"transform":       CategoryEffects,
	"animation":       CategoryEffects,
	"filter":          CategoryEffects,
	"backdrop-filter": CategoryEffects,
	"mix-blend-mode":  CategoryEffects,
}

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	if cat, ok := propertyCategories[name]; ok {
		return cat
	}

	if strings.HasPrefix(name, "-webkit-") ||
		strings.HasPrefix(name, "-moz-") ||
		strings.HasPrefix(name, "-ms-") {
		return CategoryVendor
	}

	switch {
	case strings.HasPrefix(name, "border-"), strings.HasPrefix(name, "background-"):
		return CategoryVisual
	case strings.HasPrefix(name, "font-"), strings.HasPrefix(name, "text-"):
		return CategoryTypography
	case strings.HasPrefix(name, "animation-"), strings.HasPrefix(name, "transition-"):
		return CategoryEffects
	}

	// Everything else moves boxes around
	return CategoryLayout
}

// categoriesOf returns the sorted distinct categories of decls
func categoriesOf(decls []Declaration) []PropertyCategory {
	seen := make(map[PropertyCategory]bool)
	for _, d := range decls {
		seen[categorizeProperty(d.Property)] = true
	}
	out := make([]PropertyCategory, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
