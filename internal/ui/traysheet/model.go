// Package traysheet renders the tray as a bottom sheet and turns key and
// mouse input into taps on a tray.Controller.
package traysheet

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/traysheet/internal/keys"
	"github.com/zjrosen/traysheet/internal/log"
	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/overlay"
)

// TransitionFrame is how long the view-switch frame stays on screen.
const TransitionFrame = 120 * time.Millisecond

const zoneClose = "traysheet:close"

type rowKind int

const (
	rowMode rowKind = iota
	rowIncognito
	rowModelPicker
	rowModel
)

type row struct {
	kind rowKind
	id   string
}

func (r row) zoneID() string {
	switch r.kind {
	case rowMode:
		return "traysheet:mode:" + r.id
	case rowIncognito:
		return "traysheet:incognito"
	case rowModelPicker:
		return "traysheet:model-row"
	default:
		return "traysheet:model:" + r.id
	}
}

type transitionDoneMsg struct {
	gen int
}

// Model is the sheet component. It holds presentation state only; the
// selection lives in the controller's session.
type Model struct {
	ctrl   *tray.Controller
	width  int
	height int

	focus   int
	pressed string
	hint    tray.AnimationHint
	hintGen int
}

// New creates a sheet bound to ctrl.
func New(ctrl *tray.Controller) Model {
	return Model{ctrl: ctrl}
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Opened resets presentation state for a freshly presented session and
// focuses the selected mode.
func (m Model) Opened() Model {
	m.pressed = ""
	m.hint = tray.HintNone
	m.focus = m.selectedIndex()
	return m
}

// Focus returns the index of the focused row in the current view.
func (m Model) Focus() int { return m.focus }

// Pressed returns the zone ID of the row waiting for its deferred task.
func (m Model) Pressed() string { return m.pressed }

// Transition returns the hint of the view switch being shown, if any.
func (m Model) Transition() tray.AnimationHint { return m.hint }

// Update handles input while the tray is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tray.TaskMsg:
		return m.handleTask(msg)

	case transitionDoneMsg:
		if msg.gen == m.hintGen {
			m.hint = tray.HintNone
		}
		return m, nil

	case tea.KeyMsg:
		if !m.ctrl.Visible() {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.ctrl.Visible() {
			return m, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
	}
	return m, nil
}

func (m Model) handleTask(msg tray.TaskMsg) (Model, tea.Cmd) {
	outcome, next := m.ctrl.Handle(msg)
	if msg.Task.Target != tray.TargetView {
		m.pressed = ""
	}
	if outcome.Hint == tray.HintNone {
		return m, next
	}
	m.focus = m.selectedIndex()
	m, frame := m.startTransition(outcome.Hint)
	return m, tea.Batch(next, frame)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.ctrl.Session()
	rows := m.rows()

	switch {
	case key.Matches(msg, keys.Tray.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, keys.Tray.Down):
		if m.focus < len(rows)-1 {
			m.focus++
		}
	case key.Matches(msg, keys.Tray.Activate):
		if m.focus >= 0 && m.focus < len(rows) {
			return m.activate(rows[m.focus])
		}
	case key.Matches(msg, keys.Tray.Incognito):
		if s.View() == tray.ModeSelection {
			return m.activate(row{kind: rowIncognito})
		}
	case key.Matches(msg, keys.Tray.ModelPicker):
		if s.View() == tray.ModeSelection {
			return m.activate(row{kind: rowModelPicker})
		}
	case key.Matches(msg, keys.Tray.Close):
		return m.closeButton()
	case key.Matches(msg, keys.Tray.Escape):
		if s.View() == tray.ModelSelection {
			return m.closeButton()
		}
		if m.ctrl.Config().InteractiveDismiss {
			m.ctrl.Dismiss()
		}
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.Bounds().Contains(msg.X, msg.Y) {
		if m.ctrl.Config().InteractiveDismiss {
			log.Debug(log.CatUI, "dismissed by outside click", "x", msg.X, "y", msg.Y)
			m.ctrl.Dismiss()
		}
		return m, nil
	}

	if z := zone.Get(zoneClose); z != nil && z.InBounds(msg) {
		return m.closeButton()
	}
	for i, r := range m.rows() {
		if z := zone.Get(r.zoneID()); z != nil && z.InBounds(msg) {
			m.focus = i
			return m.activate(r)
		}
	}
	return m, nil
}

// closeButton dismisses the tray from the mode view and closes the picker
// from the model view.
func (m Model) closeButton() (Model, tea.Cmd) {
	if m.ctrl.Session().View() == tray.ModelSelection {
		return m.switchView(m.ctrl.TapCloseModelPicker())
	}
	m.ctrl.TapDismiss()
	return m, nil
}

func (m Model) activate(r row) (Model, tea.Cmd) {
	switch r.kind {
	case rowMode:
		cmd := m.ctrl.TapMode(r.id)
		if cmd != nil {
			m.pressed = r.zoneID()
		}
		return m, cmd
	case rowModel:
		cmd := m.ctrl.TapModel(r.id)
		if cmd != nil {
			m.pressed = r.zoneID()
		}
		return m, cmd
	case rowIncognito:
		m.ctrl.TapIncognitoToggle(!m.ctrl.Session().Incognito())
		return m, nil
	case rowModelPicker:
		return m.switchView(m.ctrl.TapModelSelectionRow())
	}
	return m, nil
}

func (m Model) switchView(hint tray.AnimationHint, ok bool) (Model, tea.Cmd) {
	if !ok {
		return m, nil
	}
	m.pressed = ""
	m.focus = m.selectedIndex()
	return m.startTransition(hint)
}

func (m Model) startTransition(hint tray.AnimationHint) (Model, tea.Cmd) {
	m.hint = hint
	m.hintGen++
	gen := m.hintGen
	return m, tea.Tick(TransitionFrame, func(time.Time) tea.Msg {
		return transitionDoneMsg{gen: gen}
	})
}

// rows lists the focusable rows of the current view, top to bottom.
func (m Model) rows() []row {
	s := m.ctrl.Session()
	if s == nil {
		return nil
	}
	cat := s.Catalog()

	var rows []row
	if s.View() == tray.ModelSelection {
		for _, model := range cat.VisibleModels() {
			rows = append(rows, row{kind: rowModel, id: model.ID})
		}
		return rows
	}

	for _, mode := range cat.SelectableModes() {
		rows = append(rows, row{kind: rowMode, id: mode.ID})
	}
	if _, ok := cat.ToggleMode(); ok {
		rows = append(rows, row{kind: rowIncognito})
	}
	return append(rows, row{kind: rowModelPicker})
}

// selectedIndex is the row holding the current selection: the selected mode
// in the mode view, the selected model in the model view.
func (m Model) selectedIndex() int {
	s := m.ctrl.Session()
	if s == nil {
		return 0
	}
	for i, r := range m.rows() {
		if (r.kind == rowMode && r.id == s.Mode().ID) || (r.kind == rowModel && r.id == s.Model().ID) {
			return i
		}
	}
	return 0
}

func (m Model) placement() overlay.Config {
	cfg := m.ctrl.Config()
	return overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadX:     cfg.HorizontalMargin,
		PadY:     cfg.BottomMargin,
		Scrim:    true,
	}
}

// Bounds returns the screen area the sheet covers.
func (m Model) Bounds() overlay.Rect {
	return overlay.Bounds(m.placement(), m.View())
}

// Overlay renders the sheet over bg. A hidden tray leaves bg untouched.
func (m Model) Overlay(bg string) string {
	if !m.ctrl.Visible() {
		return bg
	}
	return overlay.Place(m.placement(), m.View(), bg)
}
