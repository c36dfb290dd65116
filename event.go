package pidcontrol

// Event is implemented by every event type dispatched through a PIDPlus's
// modifier chain. The back-reference returned by PID never changes for the
// life of an event.
type Event interface {
	PID() *PIDPlus

	event()
}

type eventBase struct {
	pid *PIDPlus
}

func (e *eventBase) PID() *PIDPlus { return e.pid }
func (*eventBase) event()          {}

// Modifier is attached to a PIDPlus to observe or mutate its control loop.
// It declares interest in a lifecycle event by implementing the matching
// optional interface below (AttachHandler, BaseTermsHandler, and so on).
// A Modifier with no matching handler for a given event, and no DefaultHandler,
// simply does not see that event.
type Modifier interface{}

// AttachHandler is notified once, during PIDPlus construction, when its
// modifier is attached.
type AttachHandler interface {
	OnAttached(*EventAttached) error
}

// InitialConditionsHandler is notified whenever InitialConditions runs,
// including once implicitly during PIDPlus construction.
type InitialConditionsHandler interface {
	OnInitialConditions(*EventInitialConditions) error
}

// SetpointChangeHandler is notified before a new setpoint is stored.
type SetpointChangeHandler interface {
	OnSetpointChange(*EventSetpointChange) error
}

// BaseTermsHandler is notified at the start of Update, before e/p/i/d are
// computed for any term the handler leaves unset.
type BaseTermsHandler interface {
	OnBaseTerms(*EventBaseTerms) error
}

// ModifyTermsHandler is notified after e/p/i/d have been filled in, before
// u is computed for a handler that leaves it unset.
type ModifyTermsHandler interface {
	OnModifyTerms(*EventModifyTerms) error
}

// CalculateUHandler is notified after u has a value, as the last chance to
// change the control output actually returned by Update.
type CalculateUHandler interface {
	OnCalculateU(*EventCalculateU) error
}

// HookStoppedHandler is notified in place of the original event, for every
// modifier positioned after the one that returned HookStop.
type HookStoppedHandler interface {
	OnHookStopped(*EventHookStopped) error
}

// FailureHandler is notified in place of the original event, for every
// modifier positioned after the one that returned a non-HookStop error.
type FailureHandler interface {
	OnFailure(*EventFailure) error
}

// DefaultHandler receives any event for which the modifier has no
// event-specific handler. PIDHistory and EventPrint handle every event
// other than Attached through DefaultHandler.
type DefaultHandler interface {
	OnDefault(Event) error
}

// attrBag is the open, string-keyed attribute bag shared by BaseTerms,
// ModifyTerms, and CalculateU for one Update call: a value a handler
// attaches under a custom key on BaseTerms is visible, under the same key,
// on ModifyTerms and CalculateU.
type attrBag struct {
	m map[string]any
}

func newAttrBag() *attrBag { return &attrBag{} }

// SetAttr attaches an application-defined value to the event, visible to
// every later stage of the same Update call.
func (b *attrBag) SetAttr(key string, v any) {
	if b.m == nil {
		b.m = make(map[string]any)
	}
	b.m[key] = v
}

// Attr retrieves a value previously attached with SetAttr.
func (b *attrBag) Attr(key string) (any, bool) {
	if b.m == nil {
		return nil, false
	}
	v, ok := b.m[key]
	return v, ok
}

// EventAttached fires once per modifier, during PIDPlus construction,
// before the controller has a setpoint or process variable.
type EventAttached struct {
	eventBase
}

// EventInitialConditions fires once per call to InitialConditions
// (including the implicit call PIDPlus's constructor makes with pv=0,
// setpoint=0), after the new state has already been applied.
type EventInitialConditions struct {
	eventBase
	setpoint *float64
	pv       *float64
}

// Setpoint is the setpoint argument InitialConditions was called with, or
// nil if it was omitted (setpoint carried forward unchanged).
func (e *EventInitialConditions) Setpoint() *float64 { return e.setpoint }

// PV is the pv argument InitialConditions was called with, or nil if it
// was omitted.
func (e *EventInitialConditions) PV() *float64 { return e.pv }

// EventSetpointChange fires before a new setpoint is stored, whenever the
// setpoint is written outside of InitialConditions.
type EventSetpointChange struct {
	eventBase
	spFrom float64
	spTo   float64

	// Sp, if non-nil after dispatch, overrides SpTo as the value that is
	// actually stored as the new setpoint.
	Sp *float64

	internal bool // true for SetpointRamp's own synthetic re-emission
}

// SpFrom is the setpoint before this change.
func (e *EventSetpointChange) SpFrom() float64 { return e.spFrom }

// SpTo is the setpoint the caller asked to change to.
func (e *EventSetpointChange) SpTo() float64 { return e.spTo }

// calcCommon is embedded by BaseTerms, ModifyTerms, and CalculateU: the
// dt for this Update call and the attribute bag shared across all three.
type calcCommon struct {
	eventBase
	dt   float64
	bag  *attrBag
}

// Dt is the interval, in the caller's own time units, this Update call was
// invoked with.
func (c *calcCommon) Dt() float64 { return c.dt }

// SetAttr attaches an application-defined value visible to later stages of
// this Update call (ModifyTerms, CalculateU).
func (c *calcCommon) SetAttr(key string, v any) { c.bag.SetAttr(key, v) }

// Attr retrieves a value previously attached with SetAttr, by this or an
// earlier stage of this Update call.
func (c *calcCommon) Attr(key string) (any, bool) { return c.bag.Attr(key) }

// EventBaseTerms fires at the very start of Update. Any of E, P, I, D, U
// left nil is filled in by the controller's internal calculation,
// including that calculation's side effects (advancing the integral,
// updating the previous process variable); setting a field here suppresses
// only that field's own side effect.
type EventBaseTerms struct {
	calcCommon
	E, P, I, D, U *float64
}

// EventModifyTerms fires after E, P, I, D have all been filled in (by
// BaseTerms handlers or, for whichever were left nil, the controller's
// internal calculation). U is still nil unless a BaseTerms handler set it.
type EventModifyTerms struct {
	calcCommon
	e       float64
	P, I, D float64
	U       *float64
}

// E is this tick's error (setpoint - pv), fixed by the time ModifyTerms
// fires.
func (e *EventModifyTerms) E() float64 { return e.e }

// EventCalculateU fires after U has a value (from a ModifyTerms handler,
// or else Kp*P + Ki*I + Kd*D). U is the last word: whatever it holds when
// dispatch completes is what Update returns.
type EventCalculateU struct {
	calcCommon
	e, p, i, d float64
	U          float64
}

// E is this tick's error.
func (e *EventCalculateU) E() float64 { return e.e }

// P is this tick's proportional term.
func (e *EventCalculateU) P() float64 { return e.p }

// I is this tick's integral term.
func (e *EventCalculateU) I() float64 { return e.i }

// D is this tick's derivative term.
func (e *EventCalculateU) D() float64 { return e.d }

// EventHookStopped replaces an in-flight event for every modifier
// positioned after the one that returned HookStop. Event is the event that
// was in flight (which may itself be a HookStopped, if a HookStopped
// handler raised HookStop again).
type EventHookStopped struct {
	eventBase
	Event     Event
	Stopper   Modifier
	Nth       int
	Modifiers []Modifier
}

// EventFailure replaces an in-flight event for every modifier positioned
// after the one whose handler returned a non-HookStop error. Err is
// re-raised to the caller of Update/SetSetpoint/etc. once fanout completes.
type EventFailure struct {
	eventBase
	Event     Event
	Err       error
	Stopper   Modifier
	Nth       int
	Modifiers []Modifier
}
