// File: internal/tamer/simple_event.go
// Author: momentics <momentics@gmail.com>
//
// SimpleEvent is the untyped completion token underneath every Event
// facade: a reference-counted cell that is either armed (linked into a
// rendezvous's waiting list) or empty (already triggered or cancelled).
//
// Do not embed SimpleEvent in exported types and do not construct it
// outside this package; interact with it through the Event0..Event4
// facades in event.go, matching the original tamer's "DO NOT derive from
// this class" discipline.

package tamer

// simpleEventHook is the at-trigger hook: either a chained SimpleEvent to
// trigger, or a function-plus-two-opaque-args callback. Only one of the
// two forms is populated at a time.
type simpleEventHook struct {
	chain  *SimpleEvent
	fn     func(arg1 any, arg2 int)
	arg1   any
	arg2   int
}

// SimpleEvent is the reference-counted, cancellable, slot-less completion
// token. Fields mirror tamerpriv::simple_event in the original tamer.
type SimpleEvent struct {
	r    abstractRendezvous // nil once the event is empty
	rid  uintptr
	prev *SimpleEvent
	next *SimpleEvent

	hook *simpleEventHook

	refcount uint

	annotateFile string
	annotateLine int
}

// newSimpleEvent arms a fresh SimpleEvent against r with identifier rid.
// refcount starts at 1, owned by the caller (mirrors _event_superbase's
// constructor, which is always immediately wrapped by an Event facade).
func newSimpleEvent(r abstractRendezvous, rid uintptr) *SimpleEvent {
	e := &SimpleEvent{refcount: 1}
	e.arm(r, rid)
	return e
}

// newDetachedSimpleEvent creates an already-empty SimpleEvent, used only
// for the process-wide "dead" sentinel that a default-constructed Event0
// wraps.
func newDetachedSimpleEvent() *SimpleEvent {
	return &SimpleEvent{refcount: 1}
}

// arm links e into r's waiting list at the head. e must currently be
// unarmed (r == nil).
func (e *SimpleEvent) arm(r abstractRendezvous, rid uintptr) {
	e.r = r
	e.rid = rid
	e.prev = nil
	e.next = r.waitingHead()
	if e.next != nil {
		e.next.prev = e
	}
	r.setWaitingHead(e)
	e.hook = nil
}

// Use increments the reference count.
func (e *SimpleEvent) Use() {
	if e != nil {
		e.refcount++
	}
}

// Unuse decrements the reference count; on drop to zero, if the event is
// still armed it is triggered as a cancellation before being discarded.
func (e *SimpleEvent) Unuse() {
	if e == nil {
		return
	}
	e.refcount--
	if e.refcount == 0 && !e.Empty() {
		e.simpleTrigger(false)
	}
}

// UnuseClean decrements the reference count without triggering; the
// caller asserts e is already detached (for instance, unlinked by
// simpleTrigger).
func (e *SimpleEvent) UnuseClean() {
	if e != nil {
		e.refcount--
	}
}

// Empty reports whether the event has already fired or been cancelled.
func (e *SimpleEvent) Empty() bool {
	return e == nil || e.r == nil
}

// Rendezvous returns the owning rendezvous, or nil once empty.
func (e *SimpleEvent) Rendezvous() abstractRendezvous {
	return e.r
}

// RID returns the rendezvous-assigned identifier.
func (e *SimpleEvent) RID() uintptr {
	return e.rid
}

// Annotate records a debug source location, matching TAMER_DEBUG's
// annotate(file, line). It is a no-op in the sense that it never affects
// scheduling; callers may skip it in hot paths.
func (e *SimpleEvent) Annotate(file string, line int) {
	e.annotateFile = file
	e.annotateLine = line
}

// unlink removes e from its owner's waiting list in O(1) and clears the
// owner back-pointer. Caller must not call this on an already-empty event.
func (e *SimpleEvent) unlink() {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		e.r.setWaitingHead(e.next)
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev, e.next = nil, nil
	e.r = nil
}

// simpleTrigger completes the event. values is false only for a
// cancellation. A no-op if already empty.
func (e *SimpleEvent) simpleTrigger(values bool) {
	if e.Empty() {
		return
	}
	r := e.r
	e.unlink()
	r.complete(e, values)
	e.fireHook(values)
}

// fireHook runs the at-trigger hook, if any, then clears it.
func (e *SimpleEvent) fireHook(values bool) {
	h := e.hook
	if h == nil {
		return
	}
	e.hook = nil
	if h.chain != nil {
		h.chain.simpleTrigger(values)
	} else if h.fn != nil {
		h.fn(h.arg1, h.arg2)
	}
}

// AtTrigger arms a chained event to fire when e completes. If e has
// already completed, the chained event fires immediately (with values=true,
// since a fired e cannot retroactively distinguish cancel from trigger once
// its own hook already ran; callers needing that distinction should use the
// function-hook form instead).
func (e *SimpleEvent) AtTrigger(at *SimpleEvent) {
	if e == nil || at == nil {
		return
	}
	if !e.Empty() && e.hook == nil {
		e.hook = &simpleEventHook{chain: at}
		return
	}
	e.hardAtTrigger(&simpleEventHook{chain: at})
}

// AtTriggerFunc arms a function hook to fire when e completes.
func (e *SimpleEvent) AtTriggerFunc(fn func(arg1 any, arg2 int), arg1 any, arg2 int) {
	if e == nil || fn == nil {
		return
	}
	if !e.Empty() && e.hook == nil {
		e.hook = &simpleEventHook{fn: fn, arg1: arg1, arg2: arg2}
		return
	}
	e.hardAtTrigger(&simpleEventHook{fn: fn, arg1: arg1, arg2: arg2})
}

// hardAtTrigger handles the two cases the inline fast path can't: e is
// already empty (fire now), or e already carries a hook (chain through a
// secondary SimpleEvent armed on the process-wide hook rendezvous, so an
// arbitrary number of hooks can attach in O(1) each without a dynamic
// container).
func (e *SimpleEvent) hardAtTrigger(h *simpleEventHook) {
	if e.Empty() {
		if h.chain != nil {
			h.chain.simpleTrigger(true)
		} else if h.fn != nil {
			h.fn(h.arg1, h.arg2)
		}
		return
	}
	// e is armed and already has a hook: splice a secondary event onto the
	// hidden hook rendezvous, and make e's existing hook (if a chain) plus
	// the new hook both fire off of it.
	secondary := newSimpleEvent(hookRendezvous, 0)
	secondary.hook = h
	prior := e.hook
	e.hook = &simpleEventHook{chain: secondary}
	if prior != nil {
		// preserve registration order: prior hook fires before the new one
		// by chaining secondary's trigger through a wrapper that first
		// fires prior, then completes secondary itself.
		p := prior
		secondary.hook = &simpleEventHook{fn: func(_ any, _ int) {
			if p.chain != nil {
				p.chain.simpleTrigger(true)
			} else if p.fn != nil {
				p.fn(p.arg1, p.arg2)
			}
		}}
		// re-attach the real new hook after prior fires
		combined := h
		orig := secondary.hook.fn
		secondary.hook.fn = func(a1 any, a2 int) {
			orig(a1, a2)
			if combined.chain != nil {
				combined.chain.simpleTrigger(true)
			} else if combined.fn != nil {
				combined.fn(combined.arg1, combined.arg2)
			}
		}
	}
}

// TriggerListForRemove unwinds an entire rendezvous-owned waiting list as
// cancellations in O(n), used when a rendezvous is destroyed (or cleared)
// while events remain armed.
func TriggerListForRemove(head *SimpleEvent) {
	for head != nil {
		next := head.next
		head.r = nil // already logically detached from the dying list
		head.prev, head.next = nil, nil
		head.fireHook(false)
		head = next
	}
}
