package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestApplyTheme_EmptyKeepsDefaults(t *testing.T) {
	before := AccentColor
	ApplyTheme("")
	require.Equal(t, before, AccentColor)
}

func TestApplyTheme_OverridesAccent(t *testing.T) {
	saved := AccentColor
	savedCheck, savedRow, savedLaunch, savedToast := CheckmarkStyle, RowSelectedStyle, LaunchButtonFocusedStyle, ToastBorderInfoColor
	t.Cleanup(func() {
		AccentColor = saved
		CheckmarkStyle, RowSelectedStyle, LaunchButtonFocusedStyle, ToastBorderInfoColor = savedCheck, savedRow, savedLaunch, savedToast
	})

	ApplyTheme("#FF00FF")

	want := lipgloss.AdaptiveColor{Light: "#FF00FF", Dark: "#FF00FF"}
	require.Equal(t, want, AccentColor)
	require.Equal(t, want, CheckmarkStyle.GetForeground())
	require.Equal(t, want, RowSelectedStyle.GetBorderTopForeground())
	require.Equal(t, want, ToastBorderInfoColor)
}
