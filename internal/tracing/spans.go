package tracing

// TracerName is the instrumentation scope for tray spans.
const TracerName = "github.com/zjrosen/traysheet/internal/tray"

// Span names.
const (
	SpanTaskApply = "tray.task.apply"
	SpanPresent   = "tray.present"
	SpanDismiss   = "tray.dismiss"
)

// Span attribute keys.
const (
	AttrSessionID   = "session.id"
	AttrSessionPol  = "session.policy"
	AttrTaskKind    = "task.kind"
	AttrTaskTarget  = "task.target"
	AttrTaskSeq     = "task.seq"
	AttrTaskApplied = "task.applied"
	AttrTaskDropped = "task.dropped"
)
