package pidcontrol

// SetpointRamp spreads a setpoint change out over a configured duration
// instead of letting it land as a single step. By default the ramp is
// visible: the controller's own Setpoint() reflects the interpolated
// value as it advances, via a sequence of internal SetpointChange events
// (so PIDHistory and EventPrint see every step). WithHiddenRamp instead
// lets the stored setpoint jump immediately and interpolates only the
// error term BaseTerms computes, leaving Setpoint() unchanged for
// observers.
type SetpointRamp struct {
	onceAttached

	secs      float64
	hidden    bool
	threshold float64

	active     bool
	startValue float64
	target     float64
	progressDt float64
}

// RampOption configures a SetpointRamp.
type RampOption func(*SetpointRamp)

// WithHiddenRamp makes the ramp invisible to Setpoint(): the setpoint is
// stored at its final value immediately, and only the error term used by
// BaseTerms is interpolated over the ramp's duration.
func WithHiddenRamp() RampOption {
	return func(r *SetpointRamp) { r.hidden = true }
}

// WithRampThreshold sets the |change| in setpoint at or below which no
// ramping happens; such changes are applied immediately, and only larger
// ones ramp. The default is 0: every nonzero change ramps.
func WithRampThreshold(threshold float64) RampOption {
	return func(r *SetpointRamp) { r.threshold = threshold }
}

// NewSetpointRamp creates a SetpointRamp that spreads setpoint changes
// over secs seconds (in whatever units dt is given in). secs==0 is
// allowed and makes every setpoint change land immediately; secs<0 is
// rejected with a UsageError.
func NewSetpointRamp(secs float64, opts ...RampOption) (*SetpointRamp, error) {
	if secs < 0 {
		return nil, usageErrorf("NewSetpointRamp", "ramp time (=%v) must not be negative", secs)
	}
	r := &SetpointRamp{secs: secs}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Secs changes the ramp duration. If a ramp is currently in progress,
// the remaining distance is re-spread over the new duration starting
// from the current interpolated position, rather than restarting from
// the original startValue or jumping to reflect the old schedule.
// secs<0 is rejected with a UsageError, leaving the current duration
// unchanged.
func (r *SetpointRamp) Secs(secs float64) error {
	if secs < 0 {
		return usageErrorf("Secs", "ramp time (=%v) must not be negative", secs)
	}
	if r.active {
		r.startValue = r.currentValue()
		r.progressDt = 0
	}
	r.secs = secs
	return nil
}

func (r *SetpointRamp) currentValue() float64 {
	if !r.active || r.secs == 0 {
		return r.target
	}
	frac := r.progressDt / r.secs
	if frac > 1 {
		frac = 1
	}
	return r.startValue + (r.target-r.startValue)*frac
}

func (r *SetpointRamp) OnAttached(ev *EventAttached) error {
	return r.attach(ev)
}

func (r *SetpointRamp) OnSetpointChange(ev *EventSetpointChange) error {
	if ev.internal {
		return nil
	}
	change := ev.SpTo() - ev.SpFrom()
	if change < 0 {
		change = -change
	}
	if r.secs == 0 || change <= r.threshold {
		r.active = false
		return nil
	}
	r.active = true
	r.startValue = ev.SpFrom()
	r.target = ev.SpTo()
	r.progressDt = 0
	if !r.hidden {
		v := r.startValue
		ev.Sp = &v
	}
	return nil
}

func (r *SetpointRamp) OnBaseTerms(ev *EventBaseTerms) error {
	if !r.active {
		return nil
	}
	r.progressDt += ev.Dt()
	if r.progressDt >= r.secs {
		r.active = false
		if !r.hidden {
			return r.pid.setSetpointInternal(r.target)
		}
		return nil
	}
	interp := r.currentValue()
	if r.hidden {
		v := interp - r.pid.PV()
		ev.E = &v
		return nil
	}
	return r.pid.setSetpointInternal(interp)
}
