package pidcontrol

// onceAttached is embedded by modifiers that may only ever be attached to
// a single controller (any modifier that caches a *PIDPlus back-reference
// or otherwise assumes it has exactly one owner). Its attach method, called
// from the embedding modifier's OnAttached, rejects a second attachment
// instead of silently letting the second controller clobber state meant
// for the first.
type onceAttached struct {
	pid *PIDPlus
}

func (o *onceAttached) attach(ev *EventAttached) error {
	if o.pid != nil {
		return usageErrorf("Attach", "modifier is already attached to a controller")
	}
	o.pid = ev.PID()
	return nil
}
