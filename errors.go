package pidcontrol

import (
	"errors"
	"fmt"
)

// HookStop is returned by a modifier's handler to cooperatively halt
// propagation of the in-flight event to modifiers further down the chain.
// It is control flow, not a failure: the dispatcher replaces the event
// with a HookStopped for the remaining modifiers and does not report an
// error to the caller of Update/SetSetpoint/etc.
//
// A handler signals this with:
//
//	return pidcontrol.HookStop
//
// or by wrapping it, e.g. fmt.Errorf("giving up: %w", pidcontrol.HookStop).
var HookStop = errors.New("pidcontrol: hook stop")

// UsageError reports a programmer error: a missing dt with no configured
// default, an out-of-range constructor argument, or an attempt to attach
// a single-attachment modifier to a second controller. These are meant to
// be caught during development, not handled at runtime.
type UsageError struct {
	Op  string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("pidcontrol: %s: %s", e.Op, e.Msg)
}

func usageErrorf(op, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
