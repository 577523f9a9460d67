package traysheet

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/overlay"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Config{
		Modes: []catalog.Mode{
			{ID: "search", Icon: "icon-search", Title: "Search", Subtitle: "Fast answers", Pro: true},
			{ID: "research", Icon: "icon-research", Title: "Research", Subtitle: "Deep research"},
			{ID: "incognito", Icon: "icon-incognito", Title: "Incognito mode", Subtitle: "Not saved", Toggle: true},
		},
		Models: []catalog.AIModel{
			{ID: "best", Title: "Best", Subtitle: "Everyday", Selected: true},
			{ID: "sonar", Title: "Sonar", Subtitle: "Fast"},
			{ID: "claude", Title: "Claude 3.7 Sonnet", Subtitle: "Advanced"},
			{ID: "deep", Title: "Deep Thinker", Subtitle: "Reasoning", Reasoning: true},
		},
		DisplayNames: map[string]string{"Claude 3.7 Sonnet": "Claude 3.7"},
	})
	require.NoError(t, err)
	return c
}

func testConfig() tray.Config {
	cfg := tray.DefaultConfig()
	cfg.PressDelay = time.Millisecond
	cfg.ReturnDelay = 2 * time.Millisecond
	return cfg
}

func newSheet(t *testing.T, cfg tray.Config) (Model, *tray.Controller) {
	t.Helper()
	ctrl := tray.NewController(cfg, testCatalog(t), nil)
	t.Cleanup(ctrl.Close)
	ctrl.Present()
	return New(ctrl).SetSize(80, 30).Opened(), ctrl
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func view(m Model) string {
	return zone.Scan(m.View())
}

// deliver runs a scheduled command and feeds the task it produces back into m.
func deliver(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a scheduled task")
	msg, ok := cmd().(tray.TaskMsg)
	require.True(t, ok, "expected tray.TaskMsg")
	return m.Update(msg)
}

func lineWith(t *testing.T, out, text string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, text) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", text, out)
	return ""
}

func TestView_ModeSelection(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	out := view(m)

	require.Contains(t, out, "Choose a mode")
	require.Contains(t, out, "✕")
	require.Contains(t, out, "Search")
	require.Contains(t, out, "PRO")
	require.Contains(t, out, "Research")
	require.Contains(t, out, "Incognito mode")
	require.Contains(t, out, "[ off ]")
	require.Contains(t, out, "Model")
	require.Contains(t, lineWith(t, out, "▣"), "Best")
	require.NotContains(t, out, "Deep Thinker")
}

func TestView_HiddenTrayRendersNothing(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())
	ctrl.Dismiss()

	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg"))
}

func TestOpened_FocusesSelectedMode(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	require.Equal(t, 0, m.Focus())
	require.Contains(t, lineWith(t, view(m), "Search"), "›")
}

func TestUpdate_FocusMovesWithinBounds(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	m, _ = m.Update(keyRune('k'))
	require.Equal(t, 0, m.Focus())

	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	// search, research, incognito, model row
	require.Equal(t, 3, m.Focus())
}

func TestUpdate_ModeTapIsDeferred(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, _ = m.Update(keyRune('j'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "search", ctrl.Session().Mode().ID, "selection waits for the press delay")
	require.Equal(t, "traysheet:mode:research", m.Pressed())

	m, _ = deliver(t, m, cmd)

	require.Equal(t, "research", ctrl.Session().Mode().ID)
	require.Empty(t, m.Pressed())
}

func TestUpdate_IncognitoKeyToggles(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, _ = m.Update(keyRune('i'))
	require.True(t, ctrl.Session().Incognito())
	require.Contains(t, view(m), "[ on ]")

	m, _ = m.Update(keyRune('i'))
	require.False(t, ctrl.Session().Incognito())
}

func TestUpdate_ModelPickerRoundTrip(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, frame := m.Update(keyRune('m'))
	require.NotNil(t, frame)
	require.Equal(t, tray.ModelSelection, ctrl.Session().View())
	require.Equal(t, tray.HintDownUp, m.Transition())
	require.Equal(t, 0, m.Focus(), "focus starts on the selected model")

	out := view(m)
	require.Contains(t, out, "Models")
	require.Contains(t, lineWith(t, out, "Best"), "✓")
	require.NotContains(t, out, "Deep Thinker")

	m, _ = m.Update(keyRune('j'))
	m, _ = m.Update(keyRune('j'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "traysheet:model:claude", m.Pressed())

	m, back := deliver(t, m, cmd)
	require.Equal(t, "claude", ctrl.Session().Model().ID)
	require.Equal(t, tray.ModelSelection, ctrl.Session().View(), "checkmark renders before the return")
	require.Contains(t, lineWith(t, view(m), "Claude 3.7 Sonnet"), "✓")

	m, _ = deliver(t, m, back)
	require.Equal(t, tray.ModeSelection, ctrl.Session().View())
	require.Equal(t, tray.HintUpUp, m.Transition())
	require.Contains(t, lineWith(t, view(m), "▣"), "Claude 3.7")
}

func TestUpdate_TransitionFrameClears(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	m, first := m.Update(keyRune('m'))
	m, second := m.Update(keyRune('x'))
	require.Equal(t, tray.HintUpUp, m.Transition())

	m, _ = m.Update(first())
	require.Equal(t, tray.HintUpUp, m.Transition(), "a stale frame does not clear the newer one")

	m, _ = m.Update(second())
	require.Equal(t, tray.HintNone, m.Transition())
}

func TestUpdate_EscapeClosesPickerThenDismisses(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, _ = m.Update(keyRune('m'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ctrl.Visible())
	require.Equal(t, tray.ModeSelection, ctrl.Session().View())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, ctrl.Visible())
}

func TestUpdate_InteractiveDismissDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.InteractiveDismiss = false
	m, ctrl := newSheet(t, cfg)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ctrl.Visible(), "esc ignored without interactive dismiss")

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.True(t, ctrl.Visible(), "outside click ignored without interactive dismiss")

	_, _ = m.Update(keyRune('x'))
	require.False(t, ctrl.Visible(), "close button always dismisses")
}

func TestUpdate_OutsideClickDismisses(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.True(t, ctrl.Visible(), "only the release is a tap")

	_, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.False(t, ctrl.Visible())
}

func TestUpdate_StaleTaskAfterDismissIsDropped(t *testing.T) {
	m, ctrl := newSheet(t, testConfig())

	m, _ = m.Update(keyRune('j'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyRune('x'))
	require.False(t, ctrl.Visible())

	m, next := deliver(t, m, cmd)
	require.Nil(t, next)
	require.Empty(t, m.Pressed())
	require.False(t, ctrl.Visible())
}

func TestView_FixedHeightAndWidth(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	out := view(m)

	require.Equal(t, 24, lipgloss.Height(out))
	require.Equal(t, 76, lipgloss.Width(out))
	require.True(t, strings.HasPrefix(out, "╭"), "rounded corners")
}

func TestView_SquareCornersWithoutRadius(t *testing.T) {
	cfg := testConfig()
	cfg.CornerRadius = 0
	m, _ := newSheet(t, cfg)

	require.True(t, strings.HasPrefix(view(m), "┌"))
}

func TestView_BreakpointSizing(t *testing.T) {
	cfg := testConfig()
	cfg.Sizing = tray.Sizing{Mode: tray.SizingBreakpoints, Breakpoints: []int{40, 10, 20}}
	m, _ := newSheet(t, cfg)

	// 17 content rows plus the border need 19; 20 is the smallest that fits.
	require.Equal(t, 20, lipgloss.Height(view(m)))

	m = m.SetSize(80, 15)
	require.Equal(t, 14, lipgloss.Height(view(m)), "clamped above the bottom margin")
}

func TestBounds_BottomAnchoredWithMargins(t *testing.T) {
	m, _ := newSheet(t, testConfig())

	require.Equal(t, overlay.Rect{X: 2, Y: 5, Width: 76, Height: 24}, m.Bounds())
}

func TestOverlay_PlacesSheetOverHost(t *testing.T) {
	m, _ := newSheet(t, testConfig())
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 80)+"\n", 30), "\n")

	lines := strings.Split(zone.Scan(m.Overlay(bg)), "\n")

	require.Len(t, lines, 30)
	require.Equal(t, strings.Repeat(".", 80), lines[0])
	require.Contains(t, lines[5], "╭")
	require.True(t, strings.HasPrefix(lines[5], ".."))
	require.Equal(t, strings.Repeat(".", 80), lines[29], "bottom margin row stays host")
}
