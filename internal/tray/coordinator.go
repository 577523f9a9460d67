package tray

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/log"
	"github.com/zjrosen/traysheet/internal/tracing"
)

const (
	// DefaultPressDelay lets press feedback render before a selection lands.
	DefaultPressDelay = 50 * time.Millisecond
	// DefaultReturnDelay lets the model checkmark render before the tray
	// returns to the mode view.
	DefaultReturnDelay = 100 * time.Millisecond
)

// Target is the session field a task writes. Tasks for the same target
// supersede each other.
type Target int

const (
	TargetMode Target = iota
	TargetModel
	TargetView
)

func (t Target) String() string {
	switch t {
	case TargetMode:
		return "mode"
	case TargetModel:
		return "model"
	case TargetView:
		return "view"
	default:
		return "unknown"
	}
}

// TaskKind names the mutation a task applies.
type TaskKind string

const (
	KindSelectMode    TaskKind = "select-mode"
	KindSelectModel   TaskKind = "select-model"
	KindReturnToModes TaskKind = "return-to-modes"
)

// Task is a deferred mutation bound to one session.
type Task struct {
	Seq       uint64
	SessionID string
	Target    Target
	Kind      TaskKind
	Due       time.Time

	mode  catalog.Mode
	model catalog.AIModel
}

// TaskMsg delivers a due Task to the Bubble Tea update loop.
type TaskMsg struct {
	Task Task
}

// Outcome describes what applying a task did.
type Outcome struct {
	Applied bool
	// Dropped is set with a reason when the task was skipped.
	Dropped string
	// Hint is set when the task switched views.
	Hint AnimationHint
}

// Coordinator sequences deferred session mutations. It is owned by the
// update goroutine and holds no locks.
type Coordinator struct {
	pressDelay  time.Duration
	returnDelay time.Duration
	seq         uint64
	latest      map[Target]uint64
	tracer      trace.Tracer
	now         func() time.Time
}

// NewCoordinator creates a coordinator. Zero delays fall back to the defaults.
func NewCoordinator(pressDelay, returnDelay time.Duration) *Coordinator {
	if pressDelay <= 0 {
		pressDelay = DefaultPressDelay
	}
	if returnDelay <= 0 {
		returnDelay = DefaultReturnDelay
	}
	return &Coordinator{
		pressDelay:  pressDelay,
		returnDelay: returnDelay,
		latest:      make(map[Target]uint64),
		tracer:      otel.Tracer(tracing.TracerName),
		now:         time.Now,
	}
}

// SetTracer replaces the tracer used for task spans.
func (c *Coordinator) SetTracer(t trace.Tracer) {
	if t != nil {
		c.tracer = t
	}
}

// PressDelay returns the delay before a tapped selection applies.
func (c *Coordinator) PressDelay() time.Duration { return c.pressDelay }

// ReturnDelay returns the delay before the auto-return to the mode view.
func (c *Coordinator) ReturnDelay() time.Duration { return c.returnDelay }

// RequestModeSelection schedules s.SelectMode(mode) after the press delay.
// Toggle entries are never selectable, so nothing is scheduled for them.
func (c *Coordinator) RequestModeSelection(s *Session, mode catalog.Mode) tea.Cmd {
	if s == nil {
		return nil
	}
	if mode.Toggle {
		log.Debug(log.CatCoord, "ignoring toggle mode selection", "mode", mode.ID)
		return nil
	}
	return c.schedule(Task{SessionID: s.ID(), Target: TargetMode, Kind: KindSelectMode, mode: mode}, c.pressDelay)
}

// RequestModelSelection schedules s.SelectModel(model) after the press delay.
// Once applied, a return to the mode view follows after the return delay.
// A return still pending from an earlier pick is cancelled.
func (c *Coordinator) RequestModelSelection(s *Session, model catalog.AIModel) tea.Cmd {
	if s == nil {
		return nil
	}
	c.seq++
	c.latest[TargetView] = c.seq
	return c.schedule(Task{SessionID: s.ID(), Target: TargetModel, Kind: KindSelectModel, model: model}, c.pressDelay)
}

// RequestViewSwitch switches views immediately. Any pending view task, such
// as an auto-return, is superseded.
func (c *Coordinator) RequestViewSwitch(s *Session, to View) (AnimationHint, bool) {
	if s == nil {
		return HintNone, false
	}
	c.seq++
	c.latest[TargetView] = c.seq
	return s.SwitchView(to)
}

func (c *Coordinator) schedule(task Task, d time.Duration) tea.Cmd {
	c.seq++
	task.Seq = c.seq
	task.Due = c.now().Add(d)
	c.latest[task.Target] = task.Seq

	log.Debug(log.CatCoord, "scheduled", "kind", task.Kind, "seq", task.Seq, "session", task.SessionID, "delay", d)

	return tea.Tick(d, func(time.Time) tea.Msg {
		return TaskMsg{Task: task}
	})
}

// Apply runs a due task against the live session. Tasks for a detached
// session, or superseded by a newer request for the same target, are dropped
// without effect. The returned command carries any follow-up task.
func (c *Coordinator) Apply(live *Session, msg TaskMsg) (Outcome, tea.Cmd) {
	task := msg.Task
	_, span := c.tracer.Start(context.Background(), tracing.SpanTaskApply,
		trace.WithAttributes(
			attribute.String(tracing.AttrSessionID, task.SessionID),
			attribute.String(tracing.AttrTaskKind, string(task.Kind)),
			attribute.String(tracing.AttrTaskTarget, task.Target.String()),
			attribute.Int64(tracing.AttrTaskSeq, int64(task.Seq)), //nolint:gosec // sequence numbers stay far below MaxInt64
		),
	)
	defer span.End()

	outcome, cmd := c.apply(live, task)

	span.SetAttributes(attribute.Bool(tracing.AttrTaskApplied, outcome.Applied))
	if outcome.Dropped != "" {
		span.SetAttributes(attribute.String(tracing.AttrTaskDropped, outcome.Dropped))
		log.Debug(log.CatCoord, "dropped", "kind", task.Kind, "seq", task.Seq, "reason", outcome.Dropped)
	}
	return outcome, cmd
}

func (c *Coordinator) apply(live *Session, task Task) (Outcome, tea.Cmd) {
	if live == nil || live.ID() != task.SessionID {
		return Outcome{Dropped: "detached"}, nil
	}
	if c.latest[task.Target] != task.Seq {
		return Outcome{Dropped: "superseded"}, nil
	}

	switch task.Kind {
	case KindSelectMode:
		if !live.SelectMode(task.mode) {
			return Outcome{Dropped: "not selectable"}, nil
		}
		return Outcome{Applied: true}, nil

	case KindSelectModel:
		if !live.SelectModel(task.model) {
			return Outcome{Dropped: "unknown model"}, nil
		}
		next := c.schedule(Task{SessionID: live.ID(), Target: TargetView, Kind: KindReturnToModes}, c.returnDelay)
		return Outcome{Applied: true}, next

	case KindReturnToModes:
		hint, ok := live.SwitchView(ModeSelection)
		if !ok {
			return Outcome{Dropped: "already on modes"}, nil
		}
		return Outcome{Applied: true, Hint: hint}, nil
	}

	return Outcome{Dropped: "unknown kind"}, nil
}
