// Package statemachine is a small, typed finite-state machine.
//
// States and events are any comparable types, usually string-backed enums.
// Transitions are declared up front with options; Fire moves the machine along
// the first declared transition whose guards pass, running its actions first.
//
//	type phase string
//	type signal string
//
//	m := statemachine.MustNew[phase, signal]("entering",
//	    statemachine.WithTransition[phase, signal]("entering", "visible", "shown"),
//	    statemachine.WithTransition[phase, signal]("visible", "leaving", "dismiss"),
//	)
//	err := m.Fire(ctx, "shown")
//
// An action returning an error aborts the transition and leaves the state
// unchanged. IsNoTransition and IsRejected tell the two failure cases apart.
// Machines are safe for concurrent use; guards and actions run under the
// machine's lock and must not call back into it.
package statemachine
