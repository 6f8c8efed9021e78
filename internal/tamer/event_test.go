// File: internal/tamer/event_test.go
// Author: momentics <momentics@gmail.com>

package tamer

import "testing"

func TestEvent0TriggerWakesGather(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv := NewGatherRendezvous(drv, true)
	e := MakeEvent0(rv, 0)

	ran := false
	c := &testClosure{fn: func() { ran = true }}
	if err := rv.block(c, 0); err != nil {
		t.Fatalf("block: %v", err)
	}

	e.Trigger()

	if rv.waiting != nil {
		t.Error("waiting list should be empty after the only event fires")
	}
	if !rv.queued() {
		t.Error("rendezvous should be queued for the driver to run")
	}
	if ran {
		t.Fatal("closure ran before the driver drained its unblocked FIFO")
	}

	if err := drv.Once(); err != nil {
		t.Fatalf("once: %v", err)
	}
	if !ran {
		t.Error("closure should have run once the driver drained its unblocked FIFO")
	}
	if rv.queued() {
		t.Error("rendezvous should no longer be queued after the driver ran it")
	}
}

func TestEvent1TriggerWritesOutputSlot(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv := NewExplicitRendezvous(drv, true)
	var got int
	e := MakeEvent1[int](rv, 7, &got)

	e.Trigger(42)

	if got != 42 {
		t.Errorf("output slot = %d, want 42", got)
	}
	id, ok := rv.Join()
	if !ok || id != 7 {
		t.Errorf("Join() = (%d, %v), want (7, true)", id, ok)
	}
}

func TestEventEmptyAfterTrigger(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv := NewGatherRendezvous(drv, true)
	e := MakeEvent0(rv, 0)
	if e.Empty() {
		t.Fatal("freshly armed event reported Empty")
	}
	e.Trigger()
	if !e.Empty() {
		t.Error("event should report Empty once fired")
	}
}

func TestEventCancelViaRelease(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv := NewGatherRendezvous(drv, true)
	e := MakeEvent0(rv, 0)
	e.Release()
	if !e.Empty() {
		t.Error("releasing the last reference should cancel an armed event")
	}
}

// testClosure is a minimal Closure for tests that don't care about the
// resumption position, only whether Activate ran.
type testClosure struct {
	BaseClosure
	fn func()
}

func (c *testClosure) Activate() {
	if c.fn != nil {
		c.fn()
	}
}
