package model

import (
	"regexp"
	"strings"
)

// Category is the kind of work a branch is created for.
type Category string

const (
	CategoryFeature Category = "feature"
	CategoryBugfix  Category = "bugfix"
	CategoryTest    Category = "test"
)

// Categories lists the categories offered by the selector, in display order.
var Categories = []Category{CategoryFeature, CategoryBugfix, CategoryTest}

// BranchStyle controls how much of the selected issue ends up in the
// branch name.
type BranchStyle string

const (
	// BranchStyleKey uses the issue key alone, e.g. "TQS-123".
	BranchStyleKey BranchStyle = "key"

	// BranchStyleDescriptive appends the summary, e.g. "TQS-123-Fix-login".
	BranchStyleDescriptive BranchStyle = "descriptive"
)

// Choice is one entry offered to the user by the selector.
type Choice struct {
	// Title is the label shown in the prompt ("KEY - Summary").
	Title string `json:"title"`

	// Value is the issue key handed back when this choice is picked.
	Value string `json:"value"`

	// Summary is the issue summary, kept for descriptive branch names.
	Summary string `json:"summary,omitempty"`
}

// Selection is what the selector returns.
type Selection struct {
	Value    string
	Summary  string
	Category Category

	// Confirm is true once the user accepted the final confirmation, or
	// when no confirmation was asked.
	Confirm bool
}

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// SanitizeBranchSegment restricts s to letters, digits and hyphens.
// Whitespace becomes a hyphen; anything else is dropped.
func SanitizeBranchSegment(s string) string {
	s = spaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
	return unsafeChars.ReplaceAllString(s, "")
}

// BranchName derives the branch to create from a selection. It returns ""
// when nothing usable is left after sanitizing.
func BranchName(sel Selection, style BranchStyle) string {
	name := SanitizeBranchSegment(sel.Value)
	if name == "" {
		return ""
	}

	if style == BranchStyleDescriptive {
		if summary := SanitizeBranchSegment(sel.Summary); summary != "" {
			name += "-" + summary
		}
	}

	if sel.Category != "" {
		name = string(sel.Category) + "/" + name
	}
	return name
}
