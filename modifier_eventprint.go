package pidcontrol

import (
	"log"
	"strings"
)

// EventPrint logs every event dispatched to it, one line each, indented
// by nesting depth so an event emitted from inside another event's
// handler is visually distinguishable from the event that triggered it.
// A HookStopped or Failure replaces the event it stands in for and is
// printed at that event's depth, not indented. By default it writes
// through the standard log package; WithPrintf substitutes any other
// Printf-shaped sink.
type EventPrint struct {
	onceAttached

	prefix string
	printf func(format string, args ...any)
}

// PrintOption configures an EventPrint.
type PrintOption func(*EventPrint)

// WithPrintf substitutes ep's output sink for the default log.Printf.
func WithPrintf(printf func(format string, args ...any)) PrintOption {
	return func(ep *EventPrint) { ep.printf = printf }
}

// NewEventPrint creates an EventPrint whose lines start with prefix.
func NewEventPrint(prefix string, opts ...PrintOption) *EventPrint {
	ep := &EventPrint{prefix: prefix, printf: func(format string, args ...any) {
		log.Printf(format, args...)
	}}
	for _, opt := range opts {
		opt(ep)
	}
	return ep
}

func (ep *EventPrint) OnAttached(ev *EventAttached) error {
	if err := ep.attach(ev); err != nil {
		return err
	}
	ep.print(ev)
	return nil
}

func (ep *EventPrint) OnDefault(ev Event) error {
	ep.print(ev)
	return nil
}

// print writes one line for ev. Called from both OnDefault and OnAttached,
// since resolveHandler dispatches Attached events to OnAttached instead of
// OnDefault. NestingDepth can be 0 here (attachOne never increments it), so
// the indent level is floored at 0 rather than going negative.
func (ep *EventPrint) print(ev Event) {
	depth := ev.PID().NestingDepth() - 1
	if depth < 0 {
		depth = 0
	}
	indent := strings.Repeat("  ", depth)
	detail := describeEvent(ev)
	if detail == "" {
		ep.printf("%s%s%s", ep.prefix, indent, eventName(ev))
	} else {
		ep.printf("%s%s%s: %s", ep.prefix, indent, eventName(ev), detail)
	}
}
