// Package tray implements the modal tray: the per-presentation session state,
// the coordinator that defers selection changes behind press feedback, and the
// controller that presents and dismisses the tray.
package tray

import (
	"github.com/google/uuid"

	"github.com/zjrosen/traysheet/internal/catalog"
)

// View identifies the sub-view shown inside the tray.
type View int

const (
	ModeSelection View = iota
	ModelSelection
)

func (v View) String() string {
	switch v {
	case ModeSelection:
		return "modes"
	case ModelSelection:
		return "models"
	default:
		return "unknown"
	}
}

// AnimationHint tells the renderer how to animate a view change.
type AnimationHint int

const (
	HintNone AnimationHint = iota
	// HintUpUp: outgoing view leaves upward, incoming view rises into place.
	HintUpUp
	// HintDownUp: outgoing view drops away, incoming view rises into place.
	HintDownUp
)

func (h AnimationHint) String() string {
	switch h {
	case HintUpUp:
		return "up-up"
	case HintDownUp:
		return "down-up"
	default:
		return "none"
	}
}

type transitionKey struct{ from, to View }

// transitions is the complete set of legal view changes.
var transitions = map[transitionKey]AnimationHint{
	{ModeSelection, ModelSelection}: HintDownUp,
	{ModelSelection, ModeSelection}: HintUpUp,
}

// Transition reports whether from->to is a legal view change and the hint to
// animate it with.
func Transition(from, to View) (AnimationHint, bool) {
	hint, ok := transitions[transitionKey{from, to}]
	return hint, ok
}

// Snapshot is an immutable copy of a session's observable state.
type Snapshot struct {
	SessionID string
	Visible   bool
	View      View
	Mode      catalog.Mode
	Model     catalog.AIModel
	Incognito bool
}

// Selection is the part of a session that can outlive a presentation.
type Selection struct {
	ModeID    string
	ModelID   string
	Incognito bool
}

// Session is the state of one tray presentation. It is only touched from the
// Bubble Tea update goroutine.
type Session struct {
	id        string
	catalog   *catalog.Catalog
	view      View
	mode      catalog.Mode
	model     catalog.AIModel
	incognito bool
}

// NewSession creates a session on the catalog defaults.
func NewSession(c *catalog.Catalog) *Session {
	return &Session{
		id:      uuid.NewString(),
		catalog: c,
		view:    ModeSelection,
		mode:    c.DefaultMode(),
		model:   c.DefaultModel(),
	}
}

// RestoreSession creates a session from a saved selection. IDs that no longer
// resolve to a valid entry keep the catalog default.
func RestoreSession(c *catalog.Catalog, sel Selection) *Session {
	s := NewSession(c)
	if m, ok := c.ModeByID(sel.ModeID); ok && !m.Toggle {
		s.mode = m
	}
	if m, ok := c.ModelByID(sel.ModelID); ok {
		s.model = m
	}
	s.incognito = sel.Incognito
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) View() View { return s.view }
func (s *Session) Mode() catalog.Mode { return s.mode }
func (s *Session) Model() catalog.AIModel { return s.model }
func (s *Session) Incognito() bool { return s.incognito }
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }
func (s *Session) DisplayName(m catalog.AIModel) string { return s.catalog.DisplayName(m.Title) }

// SelectMode makes mode the active mode. Toggle entries and modes outside the
// catalog are ignored.
func (s *Session) SelectMode(mode catalog.Mode) bool {
	entry, ok := s.catalog.ModeByID(mode.ID)
	if !ok || entry.Toggle {
		return false
	}
	s.mode = entry
	return true
}

// SelectModel replaces the selected model. Returning to the mode view is the
// coordinator's job.
func (s *Session) SelectModel(model catalog.AIModel) bool {
	entry, ok := s.catalog.ModelByID(model.ID)
	if !ok {
		return false
	}
	s.model = entry
	return true
}

// SetIncognito sets the incognito flag.
func (s *Session) SetIncognito(enabled bool) {
	s.incognito = enabled
}

// SwitchView moves to another sub-view. Switching to the current view, or
// along a transition missing from the table, changes nothing.
func (s *Session) SwitchView(to View) (AnimationHint, bool) {
	hint, ok := Transition(s.view, to)
	if !ok {
		return HintNone, false
	}
	s.view = to
	return hint, true
}

// Selection returns the persistable part of the session.
func (s *Session) Selection() Selection {
	return Selection{ModeID: s.mode.ID, ModelID: s.model.ID, Incognito: s.incognito}
}

// Snapshot copies the session's observable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Visible:   true,
		View:      s.view,
		Mode:      s.mode,
		Model:     s.model,
		Incognito: s.incognito,
	}
}
