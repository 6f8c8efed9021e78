// File: internal/tamer/gather_rendezvous.go
// Author: momentics <momentics@gmail.com>
//
// GatherRendezvous wakes its single parked task exactly when the last
// armed event completes, discarding identifiers entirely. This is the
// flavour behind twait(join) / "wait for all of these".
package tamer

// GatherRendezvous unblocks its parked closure the moment the waiting
// list becomes empty, regardless of how many events were armed or in
// what order they fired.
type GatherRendezvous struct {
	base
}

// NewGatherRendezvous constructs a gather rendezvous bound to drv.
func NewGatherRendezvous(drv *Driver, volatile bool) *GatherRendezvous {
	r := &GatherRendezvous{}
	r.initBase(drv, r, volatile)
	return r
}

func (r *GatherRendezvous) rtype() rendezvousType { return rtGather }

// Add arms a fresh event against this rendezvous. Unlike Add on the
// other flavours it takes no identifier: gather semantics ignore
// identifiers, so the event is armed with identifier 0.
func (r *GatherRendezvous) Add() *SimpleEvent {
	return newSimpleEvent(r, 0)
}

// complete wakes the parked closure once e was the last armed event.
// e has already unlinked itself from the waiting list by the time this
// runs, so an empty waitingHead here means "nothing left outstanding".
func (r *GatherRendezvous) complete(e *SimpleEvent, values bool) {
	_ = e
	_ = values
	if r.waiting == nil {
		r.unblock()
	}
}

// Clear cancels every still-armed event and, if a closure is parked,
// wakes it once so it can observe completion. Must be called by the
// owner of a volatile rendezvous before it goes out of scope.
func (r *GatherRendezvous) Clear() {
	r.removeWaiting()
	if r.blocked != nil {
		r.unblock()
	}
}
