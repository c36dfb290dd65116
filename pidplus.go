package pidcontrol

// PIDPlus is a PID controller whose control loop is observable and
// mutable, at well-defined stages, by an ordered chain of Modifiers.
//
// Construction attaches each modifier (an EventAttached per modifier, in
// order) and then establishes initial conditions of pv=0, setpoint=0,
// which fires a single EventInitialConditions through the full chain.
type PIDPlus struct {
	coreState

	modifiers    []Modifier
	nestingDepth int
}

// NestingDepth reports how many event emissions are currently in
// progress: 0 outside of any dispatch, 1 while directly inside a handler
// invoked by Update/SetSetpoint/InitialConditions, 2 while inside a
// handler that itself triggered a further emission, and so on.
// EventPrint uses this to indent nested events.
func (c *PIDPlus) NestingDepth() int { return c.nestingDepth }

// NewPIDPlus creates a PIDPlus with the given gains and modifiers, in the
// order given. Construction can fail if a modifier's OnAttached handler
// returns an error (for example, a stateful modifier that is already
// attached to another controller).
func NewPIDPlus(kp, ki, kd float64, mods []Modifier, opts ...Option) (*PIDPlus, error) {
	c := &PIDPlus{coreState: coreState{Kp: kp, Ki: ki, Kd: kd}, modifiers: mods}
	for _, opt := range opts {
		opt(&c.coreState)
	}
	for i := range c.modifiers {
		if err := c.attachOne(c.modifiers, i); err != nil {
			return nil, err
		}
	}
	if err := c.initialConditionsEvent(f64ptr(0), f64ptr(0)); err != nil {
		return nil, err
	}
	return c, nil
}

// FindModifier returns the first attached modifier assignable to T, and
// true, or the zero value and false if none match.
func FindModifier[T Modifier](c *PIDPlus) (T, bool) {
	var zero T
	for _, m := range c.modifiers {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// InitialConditions establishes new initial conditions (as PID.
// InitialConditions does) and then dispatches a single EventInitialConditions
// through the full modifier chain. Unlike a direct setpoint write, this
// never emits EventSetpointChange.
func (c *PIDPlus) InitialConditions(pv, setpoint *float64) error {
	return c.initialConditionsEvent(pv, setpoint)
}

func (c *PIDPlus) initialConditionsEvent(pv, setpoint *float64) error {
	c.initialConditions(pv, setpoint)
	ev := &EventInitialConditions{eventBase: eventBase{pid: c}, pv: pv, setpoint: setpoint}
	return c.notify(ev)
}

// SetSetpoint changes the setpoint through the event-driven path: it
// dispatches an EventSetpointChange before the new value is stored. A
// handler may override the stored value by setting ev.Sp; otherwise the
// requested value (SpTo) is stored.
func (c *PIDPlus) SetSetpoint(v float64) error {
	ev := &EventSetpointChange{
		eventBase: eventBase{pid: c},
		spFrom:    c.setpoint,
		spTo:      v,
	}
	if err := c.notify(ev); err != nil {
		return err
	}
	if ev.Sp != nil {
		c.setpoint = *ev.Sp
	} else {
		c.setpoint = ev.spTo
	}
	return nil
}

// setSetpointInternal stores a new setpoint and dispatches EventSetpointChange
// marked internal, so SetpointRamp's own re-emission (used to notify
// history/print observers of the ramped, interpolated setpoint) does not
// recursively trigger ramping.
func (c *PIDPlus) setSetpointInternal(v float64) error {
	ev := &EventSetpointChange{
		eventBase: eventBase{pid: c},
		spFrom:    c.setpoint,
		spTo:      v,
		internal:  true,
	}
	if err := c.notify(ev); err != nil {
		return err
	}
	if ev.Sp != nil {
		c.setpoint = *ev.Sp
	} else {
		c.setpoint = ev.spTo
	}
	return nil
}

// Update computes the next control value for the given process variable,
// dispatching EventBaseTerms, EventModifyTerms, and EventCalculateU in
// turn. dt may be omitted only if the controller was built with
// WithDefaultDt.
func (c *PIDPlus) Update(pv float64, dt ...float64) (float64, error) {
	d, err := c.resolveDt(dt)
	if err != nil {
		return 0, err
	}
	c.pv = pv

	bag := newAttrBag()
	bt := &EventBaseTerms{calcCommon: calcCommon{eventBase: eventBase{pid: c}, dt: d, bag: bag}}
	if err := c.notify(bt); err != nil {
		return 0, err
	}

	e := bt.E
	if e == nil {
		v := c.setpoint - pv
		e = &v
	}
	pTerm := bt.P
	if pTerm == nil {
		v := *e
		pTerm = &v
	}
	iTerm := bt.I
	if iTerm == nil {
		c.integration += *e * d
		v := c.integration
		iTerm = &v
	}
	dTerm := bt.D
	if dTerm == nil {
		v := -(pv - c.prevPV) / d
		dTerm = &v
		c.prevPV = pv
	}

	mt := &EventModifyTerms{
		calcCommon: calcCommon{eventBase: eventBase{pid: c}, dt: d, bag: bag},
		e:          *e,
		P:          *pTerm,
		I:          *iTerm,
		D:          *dTerm,
		U:          bt.U,
	}
	if err := c.notify(mt); err != nil {
		return 0, err
	}

	u := mt.U
	if u == nil {
		v := c.Kp*mt.P + c.Ki*mt.I + c.Kd*mt.D
		u = &v
	}

	cu := &EventCalculateU{
		calcCommon: calcCommon{eventBase: eventBase{pid: c}, dt: d, bag: bag},
		e:          mt.e,
		p:          mt.P,
		i:          mt.I,
		d:          mt.D,
		U:          *u,
	}
	if err := c.notify(cu); err != nil {
		return 0, err
	}

	c.lastP, c.lastI, c.lastD = mt.P, mt.I, mt.D
	c.haveLastPID = true

	return cu.U, nil
}
