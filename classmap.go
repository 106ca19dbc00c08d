package tipbox

import "strings"

// Canonical class selectors of the donation-goal widget markup.
const (
	ClassGoal         = ".DonateGoal_style__goal"
	ClassName         = ".DonateGoal_style__name"
	ClassLegend       = ".DonateGoal_style__legend"
	ClassStart        = ".DonateGoal_style__start"
	ClassDeadline     = ".DonateGoal_style__deadline"
	ClassEnd          = ".DonateGoal_style__end"
	ClassProgress     = ".DonateGoal_progress__progress"
	ClassProgressDone = ".DonateGoal_progress__done"
	ClassProgressText = ".DonateGoal_progress__text"
)

// ClassPair maps a canonical selector to its short alias.
type ClassPair struct {
	Canonical string
	Friendly  string
}

// classTable is applied in this order in both directions.
var classTable = []ClassPair{
	{Canonical: ClassGoal, Friendly: ".goal"},
	{Canonical: ClassName, Friendly: ".name"},
	{Canonical: ClassLegend, Friendly: ".legend"},
	{Canonical: ClassStart, Friendly: ".start"},
	{Canonical: ClassDeadline, Friendly: ".deadline"},
	{Canonical: ClassEnd, Friendly: ".end"},
	{Canonical: ClassProgress, Friendly: ".progress"},
	{Canonical: ClassProgressDone, Friendly: ".done"},
	{Canonical: ClassProgressText, Friendly: ".text"},
}

// ToFriendly rewrites canonical widget class names to their short aliases.
//
// Replacement is literal and ignores CSS syntax, so unrelated text that
// contains a canonical name is rewritten too.
func ToFriendly(css string) string {
	for _, p := range classTable {
		css = strings.ReplaceAll(css, p.Canonical, p.Friendly)
	}
	return css
}

// ToCanonical is the inverse of ToFriendly. Text such as ".progress-bar"
// in a user selector is rewritten as well; callers must avoid such input.
func ToCanonical(css string) string {
	for _, p := range classTable {
		css = strings.ReplaceAll(css, p.Friendly, p.Canonical)
	}
	return css
}

// ClassTable returns a copy of the canonical/friendly table in order.
func ClassTable() []ClassPair {
	out := make([]ClassPair, len(classTable))
	copy(out, classTable)
	return out
}

// CanonicalFor returns the canonical selector for a friendly one.
func CanonicalFor(friendly string) (string, bool) {
	for _, p := range classTable {
		if p.Friendly == friendly {
			return p.Canonical, true
		}
	}
	return "", false
}

// IsCanonicalClass reports whether name (with or without the leading dot)
// is one of the widget's real class names.
func IsCanonicalClass(name string) bool {
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	for _, p := range classTable {
		if p.Canonical == name {
			return true
		}
	}
	return false
}
