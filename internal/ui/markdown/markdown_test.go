package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender_PlainStyle(t *testing.T) {
	r, err := New(40, "notty")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("Transition between **different views**")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Transition between")
	require.Contains(t, plain, "different views")
	require.NotContains(t, plain, "**")
	require.NotEqual(t, '\n', rune(out[0]), "leading blank lines are trimmed")
}

func TestRender_PlainStyleDropsEmphasisMarkers(t *testing.T) {
	r, err := New(60, "notty")
	require.NoError(t, err)

	out, err := r.Render("a *soft* word, a **loud** word and a ~~gone~~ word")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "a soft word, a loud word and a gone word")
	require.NotContains(t, plain, "*")
	require.NotContains(t, plain, "~~")
}

func TestRender_Wraps(t *testing.T) {
	r, err := New(20, "dark")
	require.NoError(t, err)

	out, err := r.Render("one two three four five six seven eight nine ten")
	require.NoError(t, err)

	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 20)
	}
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(20, "neon")
	require.Error(t, err)
}
