package tray

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/log"
	"github.com/zjrosen/traysheet/internal/pubsub"
	"github.com/zjrosen/traysheet/internal/tracing"
)

// Controller presents and dismisses the tray and is the single entry point for
// user actions. The tray is visible exactly when a session is attached.
type Controller struct {
	cfg     Config
	catalog *catalog.Catalog
	store   SelectionStore
	coord   *Coordinator
	session *Session
	broker  *pubsub.Broker[Snapshot]
	tracer  trace.Tracer
}

// NewController creates a hidden tray. store is consulted only for the retain
// and persist policies; a nil store falls back to an in-memory one.
func NewController(cfg Config, c *catalog.Catalog, store SelectionStore) *Controller {
	if store == nil && cfg.SessionPolicy != PolicyReset {
		store = NewMemoryStore()
	}
	return &Controller{
		cfg:     cfg,
		catalog: c,
		store:   store,
		coord:   NewCoordinator(cfg.PressDelay, cfg.ReturnDelay),
		broker:  pubsub.NewBroker[Snapshot](),
		tracer:  otel.Tracer(tracing.TracerName),
	}
}

// SetTracer routes controller and coordinator spans to t.
func (c *Controller) SetTracer(t trace.Tracer) {
	if t == nil {
		return
	}
	c.tracer = t
	c.coord.SetTracer(t)
}

// Config returns the presentation settings.
func (c *Controller) Config() Config { return c.cfg }

// Catalog returns the catalog the next presentation will use.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Coordinator exposes the task sequencer.
func (c *Controller) Coordinator() *Coordinator { return c.coord }

// Events returns the broker that receives a Snapshot on every change.
func (c *Controller) Events() *pubsub.Broker[Snapshot] { return c.broker }

// Visible reports whether the tray is presented.
func (c *Controller) Visible() bool { return c.session != nil }

// Session returns the attached session, or nil while hidden.
func (c *Controller) Session() *Session { return c.session }

// SetCatalog swaps the catalog. The live session keeps its catalog; the
// change applies from the next presentation.
func (c *Controller) SetCatalog(cat *catalog.Catalog) {
	if cat != nil {
		c.catalog = cat
	}
}

// Present attaches a session and shows the tray. Presenting a visible tray
// does nothing.
func (c *Controller) Present() {
	if c.session != nil {
		return
	}

	_, span := c.tracer.Start(context.Background(), tracing.SpanPresent,
		trace.WithAttributes(attribute.String(tracing.AttrSessionPol, string(c.cfg.SessionPolicy))))
	defer span.End()

	c.session = c.newSession()
	span.SetAttributes(attribute.String(tracing.AttrSessionID, c.session.ID()))

	log.Info(log.CatTray, "presented", "session", c.session.ID(), "policy", c.cfg.SessionPolicy,
		"mode", c.session.Mode().Title, "model", c.session.Model().Title)
	c.broker.Publish(pubsub.PresentedEvent, c.session.Snapshot())
}

func (c *Controller) newSession() *Session {
	if c.cfg.SessionPolicy == PolicyReset || c.store == nil {
		return NewSession(c.catalog)
	}
	sel, ok, err := c.store.Load(context.Background())
	if err != nil {
		log.ErrorErr(log.CatTray, "loading saved selection", err)
		return NewSession(c.catalog)
	}
	if !ok {
		return NewSession(c.catalog)
	}
	return RestoreSession(c.catalog, sel)
}

// Dismiss detaches the session and hides the tray. Tasks still pending for
// the detached session are dropped when they come due.
func (c *Controller) Dismiss() {
	if c.session == nil {
		return
	}

	s := c.session
	_, span := c.tracer.Start(context.Background(), tracing.SpanDismiss,
		trace.WithAttributes(attribute.String(tracing.AttrSessionID, s.ID())))
	defer span.End()

	if c.cfg.SessionPolicy != PolicyReset && c.store != nil {
		if err := c.store.Save(context.Background(), s.Selection()); err != nil {
			log.ErrorErr(log.CatTray, "saving selection", err, "session", s.ID())
		}
	}
	c.session = nil

	snap := s.Snapshot()
	snap.Visible = false
	log.Info(log.CatTray, "dismissed", "session", s.ID())
	c.broker.Publish(pubsub.DismissedEvent, snap)
}

// TapMode requests the mode with the given ID. Unknown IDs and toggle entries
// are ignored.
func (c *Controller) TapMode(modeID string) tea.Cmd {
	if c.session == nil {
		return nil
	}
	mode, ok := c.session.Catalog().ModeByID(modeID)
	if !ok {
		log.Debug(log.CatTray, "tap on unknown mode", "mode", modeID)
		return nil
	}
	return c.coord.RequestModeSelection(c.session, mode)
}

// TapModelSelectionRow opens the model picker.
func (c *Controller) TapModelSelectionRow() (AnimationHint, bool) {
	return c.switchView(ModelSelection)
}

// TapCloseModelPicker returns to the mode view.
func (c *Controller) TapCloseModelPicker() (AnimationHint, bool) {
	return c.switchView(ModeSelection)
}

func (c *Controller) switchView(to View) (AnimationHint, bool) {
	hint, ok := c.coord.RequestViewSwitch(c.session, to)
	if ok {
		c.publishChange()
	}
	return hint, ok
}

// TapModel requests the model with the given ID. The tray returns to the mode
// view once the selection has rendered.
func (c *Controller) TapModel(modelID string) tea.Cmd {
	if c.session == nil {
		return nil
	}
	model, ok := c.session.Catalog().ModelByID(modelID)
	if !ok {
		log.Debug(log.CatTray, "tap on unknown model", "model", modelID)
		return nil
	}
	return c.coord.RequestModelSelection(c.session, model)
}

// TapIncognitoToggle sets the incognito flag immediately.
func (c *Controller) TapIncognitoToggle(enabled bool) {
	if c.session == nil || c.session.Incognito() == enabled {
		return
	}
	c.session.SetIncognito(enabled)
	c.publishChange()
}

// TapDismiss is the close button: it always dismisses, whatever the
// interactive-dismiss setting.
func (c *Controller) TapDismiss() {
	c.Dismiss()
}

// Handle applies a due task to the live session.
func (c *Controller) Handle(msg TaskMsg) (Outcome, tea.Cmd) {
	outcome, cmd := c.coord.Apply(c.session, msg)
	if outcome.Applied {
		c.publishChange()
	}
	return outcome, cmd
}

func (c *Controller) publishChange() {
	if c.session != nil {
		c.broker.Publish(pubsub.ChangedEvent, c.session.Snapshot())
	}
}

// Close releases the event broker.
func (c *Controller) Close() {
	c.broker.Close()
}
