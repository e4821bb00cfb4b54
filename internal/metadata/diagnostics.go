package metadata

import "sync"

// DiagnosticEvent records a single recovered failure: a fetch that
// returned an empty result instead of propagating an error.
type DiagnosticEvent struct {
	Operation string // "get_paper", "get_citations", "get_references", "search", "get_papers_batch"
	PaperID   string
	Err       error
}

// Diagnostics accumulates recovered per-request failures so that
// callers (Graph Builder, tests, the CLI glue) can inspect what was
// silently downgraded to an empty result without threading a logger
// through every operation. Safe for concurrent use by the builder's
// per-level fan-out.
type Diagnostics struct {
	mu     sync.Mutex
	events []DiagnosticEvent
}

// NewDiagnostics returns an empty recorder.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Record appends an event. A nil receiver is a no-op, so callers that
// don't care about diagnostics can pass a nil *Diagnostics.
func (d *Diagnostics) Record(operation, paperID string, err error) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, DiagnosticEvent{Operation: operation, PaperID: paperID, Err: err})
}

// Events returns a snapshot of the recorded events.
func (d *Diagnostics) Events() []DiagnosticEvent {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DiagnosticEvent, len(d.events))
	copy(out, d.events)
	return out
}
