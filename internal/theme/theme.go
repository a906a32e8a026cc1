package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sprintbranch/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
)

// SpinnerStyle colors the progress spinner.
var SpinnerStyle = lipgloss.NewStyle().Foreground(ColorBlue)

// HelpStyle is used for keyboard hints next to the spinner.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// SuccessStyle marks the final line of a successful run.
var SuccessStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// BranchStyle highlights a branch name.
var BranchStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorMagenta)

// OutcomeStyle returns a color-coded style for a failure kind: yellow for
// situations the user can fix locally, red for everything else.
func OutcomeStyle(kind model.Kind) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch kind {
	case model.KindNoActiveSprint, model.KindBadAskValue,
		model.KindBadResponse, model.KindNotInGitDir:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorRed)
	}
}
