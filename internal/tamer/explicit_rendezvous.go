// File: internal/tamer/explicit_rendezvous.go
// Author: momentics <momentics@gmail.com>
//
// ExplicitRendezvous preserves per-event, user-supplied identifiers and
// hands them back to the awaiter in FIFO completion order. Grounded on
// tamer::explicit_rendezvous, which reuses simple_event's own linkage
// fields as a second "ready" list; this runtime instead stages the bare
// identifiers on an eapache/queue FIFO, since SimpleEvent here is already
// unlinked from its waiting list by the time complete() runs.
package tamer

import "github.com/eapache/queue"

// ExplicitRendezvous is the rendezvous flavour behind twait(rendezvous,
// id) / MakeEvent(rv, id): each armed event carries a caller-chosen
// identifier, and Join returns identifiers in the order their events
// fired.
type ExplicitRendezvous struct {
	base
	ready *queue.Queue
}

// NewExplicitRendezvous constructs an explicit rendezvous bound to drv.
// A volatile rendezvous is expected to live only as long as a single
// blocking call (the Go analogue of a stack-allocated tamer::rendezvous),
// and must be Clear()ed by its owner before going out of scope.
func NewExplicitRendezvous(drv *Driver, volatile bool) *ExplicitRendezvous {
	r := &ExplicitRendezvous{ready: queue.New()}
	r.initBase(drv, r, volatile)
	return r
}

func (r *ExplicitRendezvous) rtype() rendezvousType { return rtExplicit }

// Add arms a fresh event against this rendezvous carrying id, ready for
// a facade (Event0, Event1[T], ...) to wrap.
func (r *ExplicitRendezvous) Add(id uintptr) *SimpleEvent {
	return newSimpleEvent(r, id)
}

// complete stages e's identifier on the ready queue and wakes the parked
// closure, if any.
func (r *ExplicitRendezvous) complete(e *SimpleEvent, values bool) {
	_ = values
	r.ready.Add(e.RID())
	r.unblock()
}

// Join pops the next ready identifier in FIFO order. ok is false if
// nothing has completed yet; the caller must then block() and wait.
func (r *ExplicitRendezvous) Join() (id uintptr, ok bool) {
	if r.ready.Length() == 0 {
		return 0, false
	}
	return r.ready.Remove().(uintptr), true
}

// Pending reports whether any identifiers are waiting to be Join()ed.
func (r *ExplicitRendezvous) Pending() bool {
	return r.ready.Length() > 0
}

// Clear cancels every still-armed event and, if a closure is parked,
// wakes it once so it can observe the now-empty rendezvous. Must be
// called by the owner of a volatile rendezvous before it goes out of
// scope (the Go stand-in for tamer::rendezvous_owner's destructor call).
func (r *ExplicitRendezvous) Clear() {
	r.removeWaiting()
	if r.blocked != nil {
		r.unblock()
	}
}
