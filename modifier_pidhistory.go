package pidcontrol

// HistoryEntry is one recorded event: its name, the nesting depth it
// fired at, and (if the PIDHistory was built WithHistoryDetail) a
// rendered snapshot of its interesting fields.
type HistoryEntry struct {
	Name         string
	NestingDepth int
	Detail       string
}

// PIDHistory records every event dispatched to it in a bounded FIFO, and
// keeps a running count of how many times each event name has been seen
// (including entries that have since been evicted from the FIFO).
type PIDHistory struct {
	onceAttached

	n      int
	detail bool

	entries []HistoryEntry
	counts  map[string]int
}

// HistoryOption configures a PIDHistory.
type HistoryOption func(*PIDHistory)

// WithHistoryDetail makes each retained HistoryEntry carry a rendered
// snapshot of the event's fields, at the cost of doing that rendering
// work for every event whether or not it is ever inspected.
func WithHistoryDetail() HistoryOption {
	return func(h *PIDHistory) { h.detail = true }
}

// NewPIDHistory creates a PIDHistory retaining the most recent n events.
func NewPIDHistory(n int, opts ...HistoryOption) *PIDHistory {
	h := &PIDHistory{n: n, counts: make(map[string]int)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PIDHistory) OnAttached(ev *EventAttached) error {
	if err := h.attach(ev); err != nil {
		return err
	}
	h.record(ev)
	return nil
}

// Entries returns the retained events, oldest first.
func (h *PIDHistory) Entries() []HistoryEntry {
	return h.entries
}

// EventCounts returns how many times each event name has been dispatched
// to this modifier, including events no longer in Entries.
func (h *PIDHistory) EventCounts() map[string]int {
	out := make(map[string]int, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}

func (h *PIDHistory) OnDefault(ev Event) error {
	h.record(ev)
	return nil
}

// record appends an entry for ev and updates its event count. Called from
// both OnDefault and OnAttached, since resolveHandler dispatches Attached
// events to OnAttached instead of OnDefault.
func (h *PIDHistory) record(ev Event) {
	name := eventName(ev)
	h.counts[name]++

	entry := HistoryEntry{Name: name, NestingDepth: ev.PID().NestingDepth()}
	if h.detail {
		entry.Detail = describeEvent(ev)
	}
	h.entries = append(h.entries, entry)
	if h.n > 0 && len(h.entries) > h.n {
		h.entries = h.entries[len(h.entries)-h.n:]
	}
}
