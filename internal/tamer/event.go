// File: internal/tamer/event.go
// Author: momentics <momentics@gmail.com>
//
// Event0..Event4 are the typed facades applications hold: each wraps a
// SimpleEvent plus up to four output-slot pointers, mirroring the
// original tamer::event<T0,T1,T2,T3> template family. Go has no variadic
// type parameters, so the family is spelled out as five concrete generic
// types rather than one generic-over-arity type.
//
// Facades are copyable values, but SimpleEvent reference counting means
// a copy must go through Use()/a dedicated constructor, and every live
// copy must eventually call Release() exactly once - the Go stand-in for
// the original's copy-constructor/destructor pair.
package tamer

// Event0 carries no result slots: Trigger() alone marks completion.
type Event0 struct {
	se *SimpleEvent
}

// deadEvent0 is an already-empty, unlinkable sentinel mirroring
// _event_superbase::dead. A zero-value Event0 does not wrap it: its se is
// nil, and every Event0 method treats a nil se as a no-op instead.
var deadEvent0 = Event0{se: newDetachedSimpleEvent()}

// MakeEvent0 wraps a fresh SimpleEvent armed against r with identifier id.
func MakeEvent0(r abstractRendezvous, id uintptr) Event0 {
	return Event0{se: newSimpleEvent(r, id)}
}

// Empty reports whether the event has already fired, been cancelled, or
// was never armed (the zero value).
func (e Event0) Empty() bool {
	return e.se == nil || e.se.Empty()
}

// Trigger fires the event, waking its rendezvous.
func (e Event0) Trigger() {
	if e.se != nil {
		e.se.simpleTrigger(true)
	}
}

// Cancel fires the event as a cancellation: the rendezvous completes it,
// but the caller's intent was abandonment, not success. Callers that
// distinguish the two should use an AtTrigger/function-hook observer.
func (e Event0) Cancel() {
	if e.se != nil {
		e.se.simpleTrigger(false)
	}
}

// AtTrigger arms at to fire when e completes.
func (e Event0) AtTrigger(at Event0) {
	if e.se != nil && at.se != nil {
		e.se.AtTrigger(at.se)
	}
}

// Use increments the underlying reference count, returning e so it can
// be retained by a second owner (e.g. both a timeout path and a success
// path holding the same completion token).
func (e Event0) Use() Event0 {
	e.se.Use()
	return e
}

// Release drops this owner's reference. If it was the last one and the
// event is still armed, it fires as a cancellation.
func (e Event0) Release() {
	e.se.Unuse()
}

// Event1 carries one output slot, written by Trigger before the
// rendezvous completes.
type Event1[T0 any] struct {
	se   *SimpleEvent
	out0 *T0
}

// MakeEvent1 wraps a fresh SimpleEvent armed against r with identifier
// id, writing its result into *out0 on Trigger.
func MakeEvent1[T0 any](r abstractRendezvous, id uintptr, out0 *T0) Event1[T0] {
	return Event1[T0]{se: newSimpleEvent(r, id), out0: out0}
}

func (e Event1[T0]) Empty() bool {
	return e.se == nil || e.se.Empty()
}

// Trigger writes v0 into the output slot, then fires the event. A second
// Trigger on an already-fired event is a no-op, slots included: the write
// only happens while the event is still armed.
func (e Event1[T0]) Trigger(v0 T0) {
	if e.se == nil || e.se.Empty() {
		return
	}
	if e.out0 != nil {
		*e.out0 = v0
	}
	e.se.simpleTrigger(true)
}

func (e Event1[T0]) Cancel() {
	if e.se != nil {
		e.se.simpleTrigger(false)
	}
}

func (e Event1[T0]) AtTrigger(at Event0) {
	if e.se != nil && at.se != nil {
		e.se.AtTrigger(at.se)
	}
}

func (e Event1[T0]) Use() Event1[T0] {
	e.se.Use()
	return e
}

func (e Event1[T0]) Release() {
	e.se.Unuse()
}

// Event2 carries two output slots.
type Event2[T0, T1 any] struct {
	se   *SimpleEvent
	out0 *T0
	out1 *T1
}

func MakeEvent2[T0, T1 any](r abstractRendezvous, id uintptr, out0 *T0, out1 *T1) Event2[T0, T1] {
	return Event2[T0, T1]{se: newSimpleEvent(r, id), out0: out0, out1: out1}
}

func (e Event2[T0, T1]) Empty() bool {
	return e.se == nil || e.se.Empty()
}

// Trigger writes v0/v1 into the output slots, then fires the event. A
// second Trigger on an already-fired event is a no-op, slots included.
func (e Event2[T0, T1]) Trigger(v0 T0, v1 T1) {
	if e.se == nil || e.se.Empty() {
		return
	}
	if e.out0 != nil {
		*e.out0 = v0
	}
	if e.out1 != nil {
		*e.out1 = v1
	}
	e.se.simpleTrigger(true)
}

func (e Event2[T0, T1]) Cancel() {
	if e.se != nil {
		e.se.simpleTrigger(false)
	}
}

func (e Event2[T0, T1]) AtTrigger(at Event0) {
	if e.se != nil && at.se != nil {
		e.se.AtTrigger(at.se)
	}
}

func (e Event2[T0, T1]) Use() Event2[T0, T1] {
	e.se.Use()
	return e
}

func (e Event2[T0, T1]) Release() {
	e.se.Unuse()
}

// Event3 carries three output slots.
type Event3[T0, T1, T2 any] struct {
	se   *SimpleEvent
	out0 *T0
	out1 *T1
	out2 *T2
}

func MakeEvent3[T0, T1, T2 any](r abstractRendezvous, id uintptr, out0 *T0, out1 *T1, out2 *T2) Event3[T0, T1, T2] {
	return Event3[T0, T1, T2]{se: newSimpleEvent(r, id), out0: out0, out1: out1, out2: out2}
}

func (e Event3[T0, T1, T2]) Empty() bool {
	return e.se == nil || e.se.Empty()
}

// Trigger writes v0/v1/v2 into the output slots, then fires the event. A
// second Trigger on an already-fired event is a no-op, slots included.
func (e Event3[T0, T1, T2]) Trigger(v0 T0, v1 T1, v2 T2) {
	if e.se == nil || e.se.Empty() {
		return
	}
	if e.out0 != nil {
		*e.out0 = v0
	}
	if e.out1 != nil {
		*e.out1 = v1
	}
	if e.out2 != nil {
		*e.out2 = v2
	}
	e.se.simpleTrigger(true)
}

func (e Event3[T0, T1, T2]) Cancel() {
	if e.se != nil {
		e.se.simpleTrigger(false)
	}
}

func (e Event3[T0, T1, T2]) AtTrigger(at Event0) {
	if e.se != nil && at.se != nil {
		e.se.AtTrigger(at.se)
	}
}

func (e Event3[T0, T1, T2]) Use() Event3[T0, T1, T2] {
	e.se.Use()
	return e
}

func (e Event3[T0, T1, T2]) Release() {
	e.se.Unuse()
}

// Event4 carries four output slots, the widest arity the original
// template family supports.
type Event4[T0, T1, T2, T3 any] struct {
	se   *SimpleEvent
	out0 *T0
	out1 *T1
	out2 *T2
	out3 *T3
}

func MakeEvent4[T0, T1, T2, T3 any](r abstractRendezvous, id uintptr, out0 *T0, out1 *T1, out2 *T2, out3 *T3) Event4[T0, T1, T2, T3] {
	return Event4[T0, T1, T2, T3]{se: newSimpleEvent(r, id), out0: out0, out1: out1, out2: out2, out3: out3}
}

func (e Event4[T0, T1, T2, T3]) Empty() bool {
	return e.se == nil || e.se.Empty()
}

// Trigger writes v0..v3 into the output slots, then fires the event. A
// second Trigger on an already-fired event is a no-op, slots included.
func (e Event4[T0, T1, T2, T3]) Trigger(v0 T0, v1 T1, v2 T2, v3 T3) {
	if e.se == nil || e.se.Empty() {
		return
	}
	if e.out0 != nil {
		*e.out0 = v0
	}
	if e.out1 != nil {
		*e.out1 = v1
	}
	if e.out2 != nil {
		*e.out2 = v2
	}
	if e.out3 != nil {
		*e.out3 = v3
	}
	e.se.simpleTrigger(true)
}

func (e Event4[T0, T1, T2, T3]) Cancel() {
	if e.se != nil {
		e.se.simpleTrigger(false)
	}
}

func (e Event4[T0, T1, T2, T3]) AtTrigger(at Event0) {
	if e.se != nil && at.se != nil {
		e.se.AtTrigger(at.se)
	}
}

func (e Event4[T0, T1, T2, T3]) Use() Event4[T0, T1, T2, T3] {
	e.se.Use()
	return e
}

func (e Event4[T0, T1, T2, T3]) Release() {
	e.se.Unuse()
}
