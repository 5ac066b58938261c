package command

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// EventType categorizes invoker events.
type EventType uint8

const (
	// EventExecuted is emitted after a command executed and was recorded.
	EventExecuted EventType = iota
	// EventUndone is emitted after a popped command was undone.
	EventUndone
	// EventFailed is emitted when Execute or Undo failed.
	EventFailed
	// EventSkipped is emitted when an activation had nothing to do.
	EventSkipped
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventExecuted:
		return "executed"
	case EventUndone:
		return "undone"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Event describes one invoker activation.
type Event struct {
	Type    EventType
	Trigger Trigger
	Command string // empty when no command was involved
	Err     error
}

// Reporter receives invoker events. Implementations must not panic.
type Reporter interface {
	Report(ev Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ev Event)

// Report implements Reporter.
func (f ReporterFunc) Report(ev Event) {
	f(ev)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

// NopReporter returns a reporter that discards all events.
func NopReporter() Reporter {
	return nopReporter{}
}

// multiReporter fans out to several reporters in order.
type multiReporter []Reporter

func (m multiReporter) Report(ev Event) {
	for _, r := range m {
		r.Report(ev)
	}
}

// Reporters combines reporters. Nil entries are skipped.
func Reporters(rs ...Reporter) Reporter {
	var out multiReporter
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// LogReporter writes failures to a console and every event to a logger.
type LogReporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewLogReporter creates a reporter. A nil writer or logger discards.
func NewLogReporter(out io.Writer, logger *slog.Logger) *LogReporter {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogReporter{out: out, logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(ev Event) {
	attrs := []any{
		slog.String("event", ev.Type.String()),
		slog.String("trigger", ev.Trigger.String()),
	}
	if ev.Command != "" {
		attrs = append(attrs, slog.String("command", ev.Command))
	}

	switch ev.Type {
	case EventFailed:
		fmt.Fprintf(r.out, "Command %s failed: %v\n", ev.Command, ev.Err)
		r.logger.Error("command failed", append(attrs, slog.Any("error", ev.Err))...)
	case EventSkipped:
		if ev.Err != nil {
			attrs = append(attrs, slog.Any("reason", ev.Err))
		}
		r.logger.Debug("activation skipped", attrs...)
	default:
		r.logger.Debug("command "+ev.Type.String(), attrs...)
	}
}

// Recorder keeps every reported event in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report implements Reporter.
func (r *Recorder) Report(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Event, len(r.events))
	copy(result, r.events)
	return result
}

// Count returns the number of recorded events of the given type.
func (r *Recorder) Count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}
