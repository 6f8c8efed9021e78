// File: internal/tamer/functional_rendezvous.go
// Author: momentics <momentics@gmail.com>
//
// FunctionalRendezvous invokes a caller-supplied hook directly from
// complete(), with no parked closure involved. This is the one flavour
// that needs anything resembling a vtable, matching the design notes'
// call to keep the other two flavours free of per-instance function
// pointers.
package tamer

// FunctionalHook receives the completed event (still valid; the caller
// must not retain it past the call) and whether it fired (true) or was
// cancelled (false).
type FunctionalHook func(r *FunctionalRendezvous, e *SimpleEvent, values bool)

// FunctionalRendezvous runs hook synchronously from complete(), used for
// fire-and-forget completions (fdwrap's Read/Write plumbing, the Bind1/
// Bind2/DistributeEvent combinators, the hidden hook rendezvous) where
// there is no cooperative task to resume.
type FunctionalRendezvous struct {
	base
	hook FunctionalHook
}

// NewFunctionalRendezvous constructs a functional rendezvous bound to
// drv, invoking hook on every completion.
func NewFunctionalRendezvous(drv *Driver, hook FunctionalHook) *FunctionalRendezvous {
	r := &FunctionalRendezvous{hook: hook}
	r.initBase(drv, r, true)
	return r
}

func (r *FunctionalRendezvous) rtype() rendezvousType { return rtFunctional }

// Add arms a fresh event against this rendezvous carrying id.
func (r *FunctionalRendezvous) Add(id uintptr) *SimpleEvent {
	return newSimpleEvent(r, id)
}

// complete invokes the hook directly; no closure is ever parked on a
// functional rendezvous, so block/unblock/run are never exercised here.
func (r *FunctionalRendezvous) complete(e *SimpleEvent, values bool) {
	if r.hook != nil {
		r.hook(r, e, values)
	}
}
