package pidcontrol

// IWindup clamps the integral term to a bounded range, preventing
// integral windup during prolonged saturation. The clamp is applied both
// to the I value ModifyTerms sees and to the controller's own running
// integral, so a later Update call does not resume accumulating from an
// unclamped value.
type IWindup struct {
	lo, hi float64
}

// NewIWindup creates an IWindup clamping the integral term to [lo, hi].
// Passing a single limit clamps symmetrically to [-limit, limit]. If lo
// and hi are given out of order, they are swapped rather than rejected.
func NewIWindup(limits ...float64) (*IWindup, error) {
	switch len(limits) {
	case 1:
		limit := limits[0]
		if limit < 0 {
			limit = -limit
		}
		return &IWindup{lo: -limit, hi: limit}, nil
	case 2:
		lo, hi := limits[0], limits[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return &IWindup{lo: lo, hi: hi}, nil
	default:
		return nil, usageErrorf("NewIWindup", "expected 1 or 2 arguments, got %d", len(limits))
	}
}

// IWindup is stateless and carries no controller back-reference, so a
// single instance may be attached to any number of PIDPlus controllers.
func (w *IWindup) OnModifyTerms(ev *EventModifyTerms) error {
	i := ev.I
	switch {
	case i > w.hi:
		i = w.hi
	case i < w.lo:
		i = w.lo
	default:
		return nil
	}
	ev.I = i
	ev.PID().integration = i
	return nil
}
