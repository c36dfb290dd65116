package pidcontrol

import "fmt"

// eventName returns a short, stable name for an event's concrete type,
// used by PIDHistory's event_counts and by EventPrint's output. It does
// not use reflection: the switch is the same shape as resolveHandler's.
func eventName(ev Event) string {
	switch ev.(type) {
	case *EventAttached:
		return "Attached"
	case *EventInitialConditions:
		return "InitialConditions"
	case *EventSetpointChange:
		return "SetpointChange"
	case *EventBaseTerms:
		return "BaseTerms"
	case *EventModifyTerms:
		return "ModifyTerms"
	case *EventCalculateU:
		return "CalculateU"
	case *EventHookStopped:
		return "HookStopped"
	case *EventFailure:
		return "Failure"
	default:
		return fmt.Sprintf("%T", ev)
	}
}

// describeEvent renders an event's interesting fields for logging. It is
// intentionally terse: full detail is available through the event object
// itself to any handler that wants it.
func describeEvent(ev Event) string {
	switch e := ev.(type) {
	case *EventAttached:
		return ""
	case *EventInitialConditions:
		return fmt.Sprintf("pv=%v setpoint=%v", derefOrNil(e.PV()), derefOrNil(e.Setpoint()))
	case *EventSetpointChange:
		return fmt.Sprintf("%v -> %v", e.SpFrom(), e.SpTo())
	case *EventBaseTerms:
		return fmt.Sprintf("dt=%v", e.Dt())
	case *EventModifyTerms:
		return fmt.Sprintf("e=%v p=%v i=%v d=%v", e.E(), e.P, e.I, e.D)
	case *EventCalculateU:
		return fmt.Sprintf("e=%v p=%v i=%v d=%v u=%v", e.E(), e.P(), e.I(), e.D(), e.U)
	case *EventHookStopped:
		return fmt.Sprintf("stopped by %T at index %d, original=%s", e.Stopper, e.Nth, eventName(e.Event))
	case *EventFailure:
		return fmt.Sprintf("%v from %T at index %d, original=%s", e.Err, e.Stopper, e.Nth, eventName(e.Event))
	default:
		return ""
	}
}

func derefOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
