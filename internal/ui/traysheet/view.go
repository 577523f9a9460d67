package traysheet

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/styles"
)

const (
	defaultWidth = 60
	minWidth     = 24
	minHeight    = 3

	// sheet border plus horizontal padding
	sheetChromeX = 4
	sheetChromeY = 2
	// row border plus horizontal padding
	rowChromeX = 4
)

var icons = map[string]string{
	"icon-search":    "⌕",
	"icon-research":  "◎",
	"icon-labs":      "△",
	"icon-incognito": "◐",
}

func glyph(icon string) string {
	if g, ok := icons[icon]; ok {
		return g
	}
	return "•"
}

// View renders the sheet alone, without the host behind it.
func (m Model) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return ""
	}

	width := m.sheetWidth()
	inner := width - sheetChromeX

	var body string
	if s.View() == tray.ModelSelection {
		body = m.renderModels(s, inner)
	} else {
		body = m.renderModes(s, inner)
	}
	if m.hint != tray.HintNone {
		body = lipgloss.NewStyle().Faint(true).Render(body)
	}

	lines := strings.Split(body, "\n")
	height := m.sheetHeight(len(lines) + sheetChromeY)
	if innerH := height - sheetChromeY; len(lines) > innerH {
		lines = lines[:innerH]
	}

	style := styles.SheetStyle
	if m.ctrl.Config().CornerRadius == 0 {
		style = styles.SheetSquareStyle
	}
	return style.
		Width(width - 2).
		Height(height - sheetChromeY).
		Render(strings.Join(lines, "\n"))
}

// sheetWidth is the viewport width less the horizontal margins.
func (m Model) sheetWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	w := m.width - 2*m.ctrl.Config().HorizontalMargin
	if w < minWidth {
		w = min(minWidth, m.width)
	}
	return w
}

// sheetHeight picks the sheet height for content needing want rows, clamped
// to the rows above the bottom margin.
func (m Model) sheetHeight(want int) int {
	cfg := m.ctrl.Config()

	h := cfg.Sizing.Height
	if cfg.Sizing.Mode == tray.SizingBreakpoints && len(cfg.Sizing.Breakpoints) > 0 {
		bps := slices.Clone(cfg.Sizing.Breakpoints)
		slices.Sort(bps)
		h = bps[len(bps)-1]
		for _, bp := range bps {
			if bp >= want {
				h = bp
				break
			}
		}
	}

	if m.height > 0 {
		h = min(h, m.height-cfg.BottomMargin)
	}
	return max(h, minHeight)
}

func (m Model) renderModes(s *tray.Session, inner int) string {
	cat := s.Catalog()
	rows := m.rows()
	parts := []string{header("Choose a mode", inner), ""}

	i := 0
	for _, mode := range cat.SelectableModes() {
		parts = append(parts, m.modeCard(mode, rows[i], i, mode.ID == s.Mode().ID, inner))
		i++
	}
	if toggle, ok := cat.ToggleMode(); ok {
		parts = append(parts, m.incognitoRow(toggle, rows[i], i, s.Incognito(), inner))
		i++
	}

	parts = append(parts, "", styles.SectionLabelStyle.Render("Model"))
	parts = append(parts, m.modelPickerCard(s.DisplayName(s.Model()), rows[i], i, inner))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderModels(s *tray.Session, inner int) string {
	rows := m.rows()
	parts := []string{header("Models", inner), ""}
	for i, model := range s.Catalog().VisibleModels() {
		parts = append(parts, m.modelCard(model, rows[i], i, model.ID == s.Model().ID, inner))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func header(title string, inner int) string {
	t := styles.TitleStyle.Render(title)
	closeBtn := zone.Mark(zoneClose, styles.CloseButtonStyle.Render("✕"))
	gap := max(inner-lipgloss.Width(t)-lipgloss.Width(closeBtn), 1)
	return t + strings.Repeat(" ", gap) + closeBtn
}

func (m Model) indicator(i int) string {
	if i == m.focus {
		return styles.TitleStyle.Render("›") + " "
	}
	return "  "
}

func (m Model) cardStyle(r row, i int, selected bool) lipgloss.Style {
	switch {
	case m.pressed == r.zoneID():
		return styles.RowPressedStyle
	case selected:
		return styles.RowSelectedStyle
	case i == m.focus:
		return styles.RowFocusedStyle
	default:
		return styles.RowStyle
	}
}

func (m Model) modeCard(mode catalog.Mode, r row, i int, selected bool, inner int) string {
	text := inner - rowChromeX

	var badge string
	if mode.Pro {
		badge = " " + styles.ProBadgeStyle.Render("PRO")
	}
	titleRoom := max(text-4-lipgloss.Width(badge), 1)
	line1 := m.indicator(i) + glyph(mode.Icon) + " " +
		styles.TitleStyle.Render(truncate.StringWithTail(mode.Title, uint(titleRoom), "…")) + badge //nolint:gosec // titleRoom is at least 1
	line2 := "    " + styles.SubtitleStyle.Render(truncate.StringWithTail(mode.Subtitle, uint(max(text-4, 1)), "…")) //nolint:gosec // positive

	card := m.cardStyle(r, i, selected).Width(inner - 2).Render(line1 + "\n" + line2)
	return zone.Mark(r.zoneID(), card)
}

func (m Model) incognitoRow(toggle catalog.Mode, r row, i int, on bool, inner int) string {
	text := inner - rowChromeX

	state := styles.HintStyle.Render("[ off ]")
	if on {
		state = styles.CheckmarkStyle.Render("[ on ]")
	}
	left := m.indicator(i) + glyph(toggle.Icon) + " " +
		styles.TitleStyle.Render(truncate.StringWithTail(toggle.Title, uint(max(text-12, 1)), "…")) //nolint:gosec // positive
	gap := max(text-lipgloss.Width(left)-lipgloss.Width(state), 1)
	line1 := left + strings.Repeat(" ", gap) + state
	line2 := "    " + styles.SubtitleStyle.Render(truncate.StringWithTail(toggle.Subtitle, uint(max(text-4, 1)), "…")) //nolint:gosec // positive

	return zone.Mark(r.zoneID(), lipgloss.NewStyle().Padding(0, 2).Render(line1+"\n"+line2))
}

func (m Model) modelPickerCard(name string, r row, i int, inner int) string {
	text := inner - rowChromeX

	chevron := styles.HintStyle.Render("›")
	left := m.indicator(i) + "▣ " + styles.TitleStyle.Render(truncate.StringWithTail(name, uint(max(text-6, 1)), "…")) //nolint:gosec // positive
	gap := max(text-lipgloss.Width(left)-lipgloss.Width(chevron), 1)

	card := m.cardStyle(r, i, false).Width(inner - 2).Render(left + strings.Repeat(" ", gap) + chevron)
	return zone.Mark(r.zoneID(), card)
}

func (m Model) modelCard(model catalog.AIModel, r row, i int, selected bool, inner int) string {
	text := inner - rowChromeX

	var check string
	if selected {
		check = styles.CheckmarkStyle.Render("✓")
	}
	left := m.indicator(i) + styles.TitleStyle.Render(truncate.StringWithTail(model.Title, uint(max(text-4, 1)), "…")) //nolint:gosec // positive
	gap := max(text-lipgloss.Width(left)-lipgloss.Width(check), 1)
	line1 := left + strings.Repeat(" ", gap) + check
	line2 := "  " + styles.SubtitleStyle.Render(truncate.StringWithTail(model.Subtitle, uint(max(text-2, 1)), "…")) //nolint:gosec // positive

	// The checkmark marks the selection here; the border stays neutral.
	card := m.cardStyle(r, i, false).Width(inner - 2).Render(line1 + "\n" + line2)
	return zone.Mark(r.zoneID(), card)
}
