// File: internal/tamer/distribute.go
// Author: momentics <momentics@gmail.com>
//
// Bind and Distribute are event combinators grounded on xevent.hh's
// _bind_rendezvous/_unbind_rendezvous: Bind reduces an event's arity by
// fixing its rightmost slot to a constant, and Distribute is the inverse
// shape, broadcasting one Trigger to many downstream events. Neither
// parks a closure; both ride a FunctionalRendezvous whose hook runs
// synchronously inside the triggering simpleTrigger call.
package tamer

// Bind1 reduces an Event1[T0] to an Event0 by fixing its output to v0:
// triggering the returned Event0 triggers inner with v0, and cancelling
// it cancels inner.
func Bind1[T0 any](inner Event1[T0], v0 T0) Event0 {
	fr := NewFunctionalRendezvous(nil, func(_ *FunctionalRendezvous, _ *SimpleEvent, values bool) {
		if values {
			inner.Trigger(v0)
		} else {
			inner.Cancel()
		}
	})
	return Event0{se: newSimpleEvent(fr, 0)}
}

// Bind2 reduces an Event2[T0,T1] to an Event1[T0] by fixing the second
// slot to v1.
func Bind2[T0, T1 any](inner Event2[T0, T1], v1 T1) Event1[T0] {
	var out0 T0
	fr := NewFunctionalRendezvous(nil, func(_ *FunctionalRendezvous, _ *SimpleEvent, values bool) {
		if values {
			inner.Trigger(out0, v1)
		} else {
			inner.Cancel()
		}
	})
	return Event1[T0]{se: newSimpleEvent(fr, 0), out0: &out0}
}

// DistributeEvent returns a single Event1[T] that, when triggered,
// broadcasts the triggered value to every target, and when cancelled,
// cancels every target. Useful when several independent waiters must
// all observe the same one-shot completion (e.g. several tasks joined
// on a single upstream read).
func DistributeEvent[T any](targets ...Event1[T]) Event1[T] {
	var fired T
	fr := NewFunctionalRendezvous(nil, nil)
	fr.hook = func(_ *FunctionalRendezvous, _ *SimpleEvent, values bool) {
		for _, t := range targets {
			if values {
				t.Trigger(fired)
			} else {
				t.Cancel()
			}
		}
	}
	return Event1[T]{se: newSimpleEvent(fr, 0), out0: &fired}
}

// Distribute immediately triggers every target with value; the direct
// counterpart of DistributeEvent for callers that already have the value
// in hand rather than an upstream Event1 to chain from.
func Distribute[T any](value T, targets ...Event1[T]) {
	for _, t := range targets {
		t.Trigger(value)
	}
}
