// Package pidcontrol implements a Proportional-Integral-Derivative
// controller, and an extensible variant (PIDPlus) whose control loop can
// be observed and rewritten at well-defined stages by an ordered chain of
// modifiers. See PIDPlus for the modifier framework; PID is the plain
// controller PIDPlus builds on.
package pidcontrol

// Option configures optional constructor arguments shared by NewPID and
// NewPIDPlus.
type Option func(*coreState)

// WithDefaultDt preconfigures dt, letting callers of Update omit it.
func WithDefaultDt(dt float64) Option {
	return func(c *coreState) {
		v := dt
		c.dtDefault = &v
	}
}

// coreState is the state spec.md's Data Model lists as shared between PID
// and PIDPlus: gains, setpoint, last-observed process variable, the
// integral accumulator, and the bookkeeping the derivative term and
// last_pid need.
type coreState struct {
	Kp, Ki, Kd float64

	setpoint    float64
	pv          float64
	integration float64
	prevPV      float64
	prevE       float64

	lastP, lastI, lastD float64
	haveLastPID         bool

	dtDefault *float64
}

func (c *coreState) resolveDt(dt []float64) (float64, error) {
	if len(dt) > 1 {
		return 0, usageErrorf("Update", "at most one dt argument may be given, got %d", len(dt))
	}
	if len(dt) == 1 {
		return dt[0], nil
	}
	if c.dtDefault != nil {
		return *c.dtDefault, nil
	}
	return 0, usageErrorf("Update", "dt is required: none was given and no default dt is configured")
}

func (c *coreState) initialConditions(pv, setpoint *float64) {
	if setpoint != nil {
		c.setpoint = *setpoint
	}
	if pv != nil {
		c.integration = 0
		c.prevPV = *pv
		c.pv = *pv
		c.haveLastPID = false
	}
}

// Setpoint returns the controller's current setpoint.
func (c *coreState) Setpoint() float64 { return c.setpoint }

// PV returns the most recently observed process variable.
func (c *coreState) PV() float64 { return c.pv }

// Integration returns the current value of the running integral.
func (c *coreState) Integration() float64 { return c.integration }

// LastPID returns the unweighted (p, i, d) terms from the most recent
// Update call. ok is false before the first call.
func (c *coreState) LastPID() (p, i, d float64, ok bool) {
	return c.lastP, c.lastI, c.lastD, c.haveLastPID
}

// PID is a basic PID controller: no modifiers, no events, just the three
// scaled terms summed each tick.
type PID struct {
	coreState
}

// NewPID creates a PID controller with the given gains. Gains may be zero
// or negative; nothing about a controller's gains is validated. Use
// WithDefaultDt to let Update be called without an explicit dt.
func NewPID(kp, ki, kd float64, opts ...Option) *PID {
	p := &PID{coreState: coreState{Kp: kp, Ki: ki, Kd: kd}}
	for _, opt := range opts {
		opt(&p.coreState)
	}
	p.initialConditions(f64ptr(0), f64ptr(0))
	return p
}

// InitialConditions establishes new initial conditions. Passing a non-nil
// pv resets the integral to zero and primes the derivative term so the
// very next Update call reports a zero rate of change, regardless of any
// prior pv. Passing nil for either argument leaves that piece of state
// carried forward unchanged.
func (p *PID) InitialConditions(pv, setpoint *float64) {
	p.initialConditions(pv, setpoint)
}

// SetSetpoint assigns a new setpoint directly: no ramping, no event, no
// side effects. See PIDPlus.SetSetpoint for the event-driven equivalent.
func (p *PID) SetSetpoint(v float64) { p.setpoint = v }

// Update computes the next control value for the given process variable.
// dt may be omitted only if the controller was built with WithDefaultDt.
func (p *PID) Update(pv float64, dt ...float64) (float64, error) {
	d, err := p.resolveDt(dt)
	if err != nil {
		return 0, err
	}
	p.pv = pv

	e := p.setpoint - pv
	pTerm := e
	p.integration += e * d
	iTerm := p.integration
	dTerm := -(pv - p.prevPV) / d
	p.prevPV = pv

	u := p.Kp*pTerm + p.Ki*iTerm + p.Kd*dTerm

	p.lastP, p.lastI, p.lastD = pTerm, iTerm, dTerm
	p.haveLastPID = true
	p.prevE = e

	return u, nil
}

func f64ptr(v float64) *float64 { return &v }
