package pidcontrol

// ISetpointReset zeroes the integral term whenever the setpoint changes,
// and holds it at zero for a configured delay afterward, on the theory
// that the integral accumulated against the old setpoint has no bearing
// on the new one and would otherwise reintroduce the error that just
// changed.
type ISetpointReset struct {
	onceAttached

	delay     float64
	remaining float64
	paused    bool
}

// NewISetpointReset creates an ISetpointReset that holds the integral at
// zero for delaySecs after every setpoint change.
func NewISetpointReset(delaySecs float64) *ISetpointReset {
	return &ISetpointReset{delay: delaySecs}
}

func (r *ISetpointReset) OnAttached(ev *EventAttached) error {
	return r.attach(ev)
}

func (r *ISetpointReset) OnSetpointChange(ev *EventSetpointChange) error {
	if ev.internal {
		return nil
	}
	r.pid.integration = 0
	r.remaining = r.delay
	r.paused = r.delay > 0
	return nil
}

func (r *ISetpointReset) OnBaseTerms(ev *EventBaseTerms) error {
	if !r.paused {
		return nil
	}
	v := r.pid.Integration()
	ev.I = &v
	r.remaining -= ev.Dt()
	if r.remaining <= 0 {
		r.paused = false
	}
	return nil
}
