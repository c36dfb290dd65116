package pidcontrol

import "errors"

// handlerFunc is a modifier's resolved handler for one event, already bound
// to the modifier and the specific On* method the dispatcher selected.
type handlerFunc func(Event) error

// resolveHandler picks the handler m exposes for ev: the event-specific
// optional interface if m implements it, else DefaultHandler, else nil (no
// handler at all, meaning ev is silently ignored by m).
func resolveHandler(ev Event, m Modifier) handlerFunc {
	switch ev.(type) {
	case *EventAttached:
		if h, ok := m.(AttachHandler); ok {
			return func(e Event) error { return h.OnAttached(e.(*EventAttached)) }
		}
	case *EventInitialConditions:
		if h, ok := m.(InitialConditionsHandler); ok {
			return func(e Event) error { return h.OnInitialConditions(e.(*EventInitialConditions)) }
		}
	case *EventSetpointChange:
		if h, ok := m.(SetpointChangeHandler); ok {
			return func(e Event) error { return h.OnSetpointChange(e.(*EventSetpointChange)) }
		}
	case *EventBaseTerms:
		if h, ok := m.(BaseTermsHandler); ok {
			return func(e Event) error { return h.OnBaseTerms(e.(*EventBaseTerms)) }
		}
	case *EventModifyTerms:
		if h, ok := m.(ModifyTermsHandler); ok {
			return func(e Event) error { return h.OnModifyTerms(e.(*EventModifyTerms)) }
		}
	case *EventCalculateU:
		if h, ok := m.(CalculateUHandler); ok {
			return func(e Event) error { return h.OnCalculateU(e.(*EventCalculateU)) }
		}
	case *EventHookStopped:
		if h, ok := m.(HookStoppedHandler); ok {
			return func(e Event) error { return h.OnHookStopped(e.(*EventHookStopped)) }
		}
	case *EventFailure:
		if h, ok := m.(FailureHandler); ok {
			return func(e Event) error { return h.OnFailure(e.(*EventFailure)) }
		}
	}
	if h, ok := m.(DefaultHandler); ok {
		return func(e Event) error { return h.OnDefault(e) }
	}
	return nil
}

// notify is the entry point for dispatching one logical event to the full
// modifier chain. It is what every emission site (Attached aside, which
// dispatches per-modifier) calls exactly once per event.
//
// nestingDepth counts logical emissions, not the internal HookStopped/
// Failure replacement chain a single emission may fan out into: per
// spec, a HookStopped event "replaces the current event, it does not
// descend."
func (c *PIDPlus) notify(ev Event) error {
	c.nestingDepth++
	defer func() { c.nestingDepth-- }()
	return c.dispatchChain(c.modifiers, 0, ev, false)
}

// dispatchChain drives ev through mods[start:], implementing HookStop and
// Failure fanout.
//
// A HookStop from mods[i] builds an EventHookStopped wrapping ev and
// recurses starting at i+1 — regardless of inFailure, since HookStop is
// always allowed to escalate, and the slice strictly shrinks each
// recursion so this always terminates.
//
// A non-HookStop error from mods[i], when inFailure is false, builds an
// EventFailure wrapping ev, fans it out over mods[i+1:] (with inFailure
// true), and then returns the original error to the caller regardless of
// how that fanout went.
//
// A non-HookStop error from mods[i] when inFailure is already true (a
// failure occurring while already fanning out a Failure) halts silently:
// no second Failure event is built, and dispatchChain returns nil. The
// original error from the outer call is still what reaches the caller,
// since it was already captured there before this nested call was made.
func (c *PIDPlus) dispatchChain(mods []Modifier, start int, ev Event, inFailure bool) error {
	for i := start; i < len(mods); i++ {
		m := mods[i]
		h := resolveHandler(ev, m)
		if h == nil {
			continue
		}
		err := h(ev)
		if err == nil {
			continue
		}
		if errors.Is(err, HookStop) {
			hs := &EventHookStopped{
				eventBase: eventBase{pid: c},
				Event:     ev,
				Stopper:   m,
				Nth:       i,
				Modifiers: mods,
			}
			return c.dispatchChain(mods, i+1, hs, inFailure)
		}
		if inFailure {
			return nil
		}
		fe := &EventFailure{
			eventBase: eventBase{pid: c},
			Event:     ev,
			Err:       err,
			Stopper:   m,
			Nth:       i,
			Modifiers: mods,
		}
		_ = c.dispatchChain(mods, i+1, fe, true)
		return err
	}
	return nil
}

// attachOne dispatches a fresh EventAttached to exactly mods[idx]. Unlike
// notify, this does not walk the whole chain on the happy path: each
// modifier is attached independently. On error, the usual HookStop/Failure
// fanout still runs, scoped to the modifiers remaining in this attach pass
// (mods[idx+1:]).
func (c *PIDPlus) attachOne(mods []Modifier, idx int) error {
	m := mods[idx]
	ev := &EventAttached{eventBase: eventBase{pid: c}}
	h := resolveHandler(ev, m)
	if h == nil {
		return nil
	}
	err := h(ev)
	if err == nil {
		return nil
	}
	if errors.Is(err, HookStop) {
		hs := &EventHookStopped{
			eventBase: eventBase{pid: c},
			Event:     ev,
			Stopper:   m,
			Nth:       idx,
			Modifiers: mods,
		}
		return c.dispatchChain(mods, idx+1, hs, false)
	}
	fe := &EventFailure{
		eventBase: eventBase{pid: c},
		Event:     ev,
		Err:       err,
		Stopper:   m,
		Nth:       idx,
		Modifiers: mods,
	}
	_ = c.dispatchChain(mods, idx+1, fe, true)
	return err
}
