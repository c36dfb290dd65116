package pidcontrol

// BangBang replaces the calculated control output u with one of two (or
// three) fixed values, classifying it against on/off thresholds instead
// of ever returning a graduated value. It is meant for actuators with no
// proportional response at all (a relay, a solenoid valve).
//
// Threshold semantics, per which of onThreshold/offThreshold are set:
//   - only onThreshold set:  ON if u >= onThreshold, else OFF
//   - only offThreshold set: ON if u > offThreshold, else OFF
//   - both set:              ON if u >= onThreshold, OFF if u <= offThreshold,
//     otherwise DEAD (u replaced by deadValue if deadValue is set, else
//     left unchanged)
//
// At least one of onThreshold/offThreshold must be set.
//
// BangBang is stateless and carries no controller back-reference, so a
// single instance may be attached to any number of PIDPlus controllers.
type BangBang struct {
	onThreshold  *float64
	offThreshold *float64
	onValue      float64
	offValue     float64
	deadValue    *float64
}

// BangBangOption configures a BangBang.
type BangBangOption func(*BangBang)

// WithOnThreshold sets the ON threshold. The default is 0.
func WithOnThreshold(t float64) BangBangOption {
	return func(b *BangBang) { v := t; b.onThreshold = &v }
}

// WithoutOnThreshold unsets the ON threshold, selecting the
// off-threshold-only classification rule.
func WithoutOnThreshold() BangBangOption {
	return func(b *BangBang) { b.onThreshold = nil }
}

// WithOffThreshold sets the OFF threshold. The default is 0.
func WithOffThreshold(t float64) BangBangOption {
	return func(b *BangBang) { v := t; b.offThreshold = &v }
}

// WithoutOffThreshold unsets the OFF threshold, selecting the
// on-threshold-only classification rule.
func WithoutOffThreshold() BangBangOption {
	return func(b *BangBang) { b.offThreshold = nil }
}

// WithBangBangValues sets the ON and OFF output values. The default is
// 1 and 0.
func WithBangBangValues(on, off float64) BangBangOption {
	return func(b *BangBang) { b.onValue, b.offValue = on, off }
}

// WithDeadValue sets the value substituted for u while it is in the dead
// zone between the two thresholds. The default is to leave u unchanged.
func WithDeadValue(v float64) BangBangOption {
	return func(b *BangBang) { d := v; b.deadValue = &d }
}

// NewBangBang creates a BangBang with both thresholds at 0, on_value 1,
// off_value 0, and no dead value, unless overridden by opts.
func NewBangBang(opts ...BangBangOption) *BangBang {
	onT, offT := 0.0, 0.0
	b := &BangBang{onThreshold: &onT, offThreshold: &offT, onValue: 1, offValue: 0}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BangBang) OnCalculateU(ev *EventCalculateU) error {
	u := ev.U
	var val float64
	switch {
	case b.offThreshold == nil:
		if u >= *b.onThreshold {
			val = b.onValue
		} else {
			val = b.offValue
		}
	case b.onThreshold == nil:
		if u > *b.offThreshold {
			val = b.onValue
		} else {
			val = b.offValue
		}
	default:
		switch {
		case u >= *b.onThreshold:
			val = b.onValue
		case u <= *b.offThreshold:
			val = b.offValue
		case b.deadValue != nil:
			val = *b.deadValue
		default:
			return nil
		}
	}
	ev.U = val
	return nil
}
