// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Accent
	AccentColor     = lipgloss.AdaptiveColor{Light: "#0D7A8A", Dark: "#1FB8CD"} // Selected borders, checkmarks, launch button
	AccentDeepColor = lipgloss.AdaptiveColor{Light: "#13A3B8", Dark: "#13A3B8"}
	SelectedFill    = lipgloss.AdaptiveColor{Light: "#D6F3F7", Dark: "#13343B"} // Selected mode row background

	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9A9A9A"} // Subtitles, section labels
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Hints, chevrons

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3A3A3A"}
	SheetBorderColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#5A5A5A"}

	// Badges
	ProBadgeColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#0D7A8A", Dark: "#1FB8CD"}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	SubtitleStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	SectionLabelStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Bold(true)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	CloseButtonStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Padding(0, 1)

	CloseButtonFocusedStyle = CloseButtonStyle.Reverse(true)

	CheckmarkStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)

	ProBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ProBadgeColor).
			Padding(0, 1)

	// Row is the bordered option card used for modes and models.
	RowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	RowSelectedStyle = RowStyle.
				BorderForeground(AccentColor).
				Background(SelectedFill)

	RowFocusedStyle = RowStyle.
			BorderForeground(TextPrimaryColor)

	// RowPressedStyle is shown between a tap and its deferred selection.
	RowPressedStyle = RowStyle.
			BorderForeground(AccentDeepColor).
			Faint(true)

	SheetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SheetBorderColor).
			Padding(0, 1)

	SheetSquareStyle = SheetStyle.Border(lipgloss.NormalBorder())

	// Launch button
	baseButtonStyle = lipgloss.NewStyle().Padding(0, 4).Bold(true)

	LaunchButtonStyle = baseButtonStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(AccentDeepColor)

	LaunchButtonFocusedStyle = baseButtonStyle.
					Foreground(lipgloss.Color("#FFFFFF")).
					Background(AccentColor).
					Underline(true).
					UnderlineSpaces(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)

// ApplyTheme overrides the accent colour from configuration. An empty string
// keeps the default.
func ApplyTheme(accent string) {
	if accent == "" {
		return
	}
	AccentColor = lipgloss.AdaptiveColor{Light: accent, Dark: accent}
	CheckmarkStyle = CheckmarkStyle.Foreground(AccentColor)
	RowSelectedStyle = RowSelectedStyle.BorderForeground(AccentColor)
	LaunchButtonFocusedStyle = LaunchButtonFocusedStyle.Background(AccentColor)
	ToastBorderInfoColor = AccentColor
}
