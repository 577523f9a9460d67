// Package toaster shows a short-lived notice summarising the tray selection
// after the sheet is dismissed.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/overlay"
	"github.com/zjrosen/traysheet/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows a green border.
	StyleSuccess Style = iota
	// StyleInfo shows an accent border.
	StyleInfo
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	// gen identifies the current toast so a stale dismiss tick cannot hide a
	// newer one.
	gen int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast and returns the command that will hide it.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.gen++
	return m, ScheduleDismiss(m.gen, d)
}

// ShowSelection summarises the selection carried by a dismissed snapshot,
// e.g. "Research · Claude 3.7 · incognito".
func (m Model) ShowSelection(snap tray.Snapshot, modelName string) (Model, tea.Cmd) {
	return m.Show(Summary(snap, modelName), StyleSuccess, DefaultDuration)
}

// Summary formats the chosen mode, model and incognito flag.
func Summary(snap tray.Snapshot, modelName string) string {
	if modelName == "" {
		modelName = snap.Model.Title
	}
	parts := []string{snap.Mode.Title, modelName}
	if snap.Incognito {
		parts = append(parts, "incognito")
	}
	return strings.Join(parts, " · ")
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Update hides the toast when its own dismiss tick arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.gen == m.gen {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.style {
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		content = "ℹ️ " + m.message
	default: // StyleSuccess
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		content = "✅ " + m.message
	}

	return style.Render(content)
}

// Overlay renders the toast on top of a background view.
// Uses bottom-center positioning with padding from the bottom edge.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}

	cfg := overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}

	return overlay.Place(cfg, m.View(), bg)
}

// DismissMsg signals that the toast with the given generation should hide.
type DismissMsg struct {
	gen int
}

// ScheduleDismiss returns a command that dismisses toast gen after d.
func ScheduleDismiss(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{gen: gen}
	})
}
