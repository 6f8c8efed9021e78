// File: internal/tamer/rendezvous.go
// Author: momentics <momentics@gmail.com>
//
// abstractRendezvous is the shared base every rendezvous flavour embeds.
// The three flavours (explicit, gather, functional) are represented as a
// tagged variant with a per-variant completion hook, not as deep
// inheritance, per the design notes: only the functional flavour needs
// anything resembling a vtable.

package tamer

// rendezvousType tags which flavour a rendezvous is.
type rendezvousType uint8

const (
	rtGather rendezvousType = iota
	rtExplicit
	rtFunctional
)

// abstractRendezvous is the minimal contract simple_event needs to link,
// unlink, and complete against a rendezvous, and that the driver needs to
// park and resume a closure against it.
type abstractRendezvous interface {
	// waitingHead/setWaitingHead give simple_event O(1) intrusive list
	// splicing without abstractRendezvous needing to know event internals.
	waitingHead() *SimpleEvent
	setWaitingHead(*SimpleEvent)

	// complete is invoked by simple_trigger once e has unlinked itself
	// from the waiting list, with values=false for cancellation.
	complete(e *SimpleEvent, values bool)

	rtype() rendezvousType
	isVolatile() bool

	// block/unblock/run implement the closure activation protocol.
	block(c Closure, position uint) error
	unblock()
	run()

	// queued reports membership in the driver's unblocked FIFO, giving
	// O(1) duplicate-free membership without scanning the queue.
	queued() bool
}

// closurePosition lets block() stash the resumption tag on any Closure
// that embeds BaseClosure, without a concrete type switch (so both
// BaseClosure and BaseDebugClosure satisfy it via promotion).
type closurePosition interface {
	setPosition(uint)
}

// base carries the fields and default behavior shared by every flavour.
// Each concrete rendezvous type embeds base and satisfies the remainder of
// abstractRendezvous itself (complete, rtype), and must call initBase
// naming itself so unblock() can enqueue the right value.
type base struct {
	drv     *Driver
	self    abstractRendezvous
	waiting *SimpleEvent
	blocked Closure
	volatile bool
	inQueue bool
}

func (b *base) initBase(drv *Driver, self abstractRendezvous, volatile bool) {
	b.drv = drv
	b.self = self
	b.volatile = volatile
}

func (b *base) waitingHead() *SimpleEvent     { return b.waiting }
func (b *base) setWaitingHead(e *SimpleEvent) { b.waiting = e }
func (b *base) isVolatile() bool              { return b.volatile }
func (b *base) queued() bool                  { return b.inQueue }

// block parks c on the rendezvous. Only one closure may be parked at a
// time; blocking an already-occupied rendezvous is a programmer error.
// A fresh block resets the queued-membership flag: the rendezvous is
// eligible to be re-enqueued the next time one of its events completes.
func (b *base) block(c Closure, position uint) error {
	if b.blocked != nil {
		return ErrRendezvousOccupied
	}
	b.blocked = c
	b.inQueue = false
	if p, ok := c.(closurePosition); ok {
		p.setPosition(position)
	}
	return nil
}

// unblock appends the rendezvous to the driver's unblocked FIFO, at most
// once per block/run cycle.
func (b *base) unblock() {
	if b.blocked != nil && !b.inQueue && b.drv != nil {
		b.inQueue = true
		b.drv.enqueueUnblocked(b.self)
	}
}

// run re-enters the parked closure's activator. It clears inQueue too:
// once dequeued and run, the rendezvous is no longer a member of the
// driver's unblocked FIFO, matching what queued() reports.
func (b *base) run() {
	c := b.blocked
	b.blocked = nil
	b.inQueue = false
	if c != nil {
		c.Activate()
	}
}

// removeWaiting unwinds the entire waiting list as cancellations, used by
// the Clear method of the explicit and gather flavours.
func (b *base) removeWaiting() {
	if b.waiting != nil {
		head := b.waiting
		b.waiting = nil
		TriggerListForRemove(head)
	}
}
