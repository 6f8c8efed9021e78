// File: internal/tamer/driver_test.go
// Author: momentics <momentics@gmail.com>

package tamer

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	t.Cleanup(func() { drv.Close() })
	return drv
}

// tagRendezvous is a FunctionalRendezvous whose hook just records that it
// ran; used wherever a test needs an observation point with no parked
// closure involved.
func tagRendezvous(drv *Driver, fn func(values bool)) *FunctionalRendezvous {
	return NewFunctionalRendezvous(drv, func(_ *FunctionalRendezvous, _ *SimpleEvent, values bool) {
		fn(values)
	})
}

func TestDriverRunsDueTimer(t *testing.T) {
	drv := newTestDriver(t)

	fired := false
	rv := tagRendezvous(drv, func(values bool) { fired = values })
	e := MakeEvent0(rv, 0)
	drv.AtDelay(0, e)

	for i := 0; i < 20 && !fired; i++ {
		if err := drv.Once(); err != nil {
			t.Fatalf("once: %v", err)
		}
	}
	if !fired {
		t.Error("timer never fired")
	}
}

func TestDriverTwoTimerOrdering(t *testing.T) {
	drv := newTestDriver(t)

	var order []int
	mk := func(tag int) Event0 {
		rv := tagRendezvous(drv, func(bool) { order = append(order, tag) })
		return MakeEvent0(rv, 0)
	}

	drv.AtDelay(20*time.Millisecond, mk(2))
	drv.AtDelay(5*time.Millisecond, mk(1))

	deadline := time.Now().Add(time.Second)
	for len(order) < 2 && time.Now().Before(deadline) {
		if err := drv.Once(); err != nil {
			t.Fatalf("once: %v", err)
		}
	}

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("fire order = %v, want [1 2]", order)
	}
}

func TestDriverAsapRunsLIFO(t *testing.T) {
	drv := newTestDriver(t)

	var order []int
	mk := func(tag int) Event0 {
		rv := tagRendezvous(drv, func(bool) { order = append(order, tag) })
		return MakeEvent0(rv, 0)
	}

	drv.AtAsap(mk(1))
	drv.AtAsap(mk(2))
	drv.AtAsap(mk(3))

	if err := drv.Once(); err != nil {
		t.Fatalf("once: %v", err)
	}

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestDriverFDReadEcho(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	drv := newTestDriver(t)

	var gotByte byte
	rv := tagRendezvous(drv, func(values bool) {
		if !values {
			return
		}
		var buf [1]byte
		n, _ := syscall.Read(int(r.Fd()), buf[:])
		if n == 1 {
			gotByte = buf[0]
		}
	})
	ev := MakeEvent0(rv, 0)
	if err := drv.AtFDRead(r.Fd(), ev); err != nil {
		t.Fatalf("at fd read: %v", err)
	}

	w.Write([]byte{'x'})

	deadline := time.Now().Add(time.Second)
	for gotByte == 0 && time.Now().Before(deadline) {
		if err := drv.Once(); err != nil {
			t.Fatalf("once: %v", err)
		}
	}
	if gotByte != 'x' {
		t.Errorf("got byte %q, want 'x'", gotByte)
	}
}

func TestDriverSignalDelivery(t *testing.T) {
	drv := newTestDriver(t)

	delivered := false
	rv := tagRendezvous(drv, func(values bool) { delivered = values })
	ev := MakeEvent0(rv, 0)
	if err := drv.AtSignal(syscall.SIGUSR1, ev); err != nil {
		t.Fatalf("at signal: %v", err)
	}

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("find process: %v", err)
	}
	if err := proc.Signal(syscall.SIGUSR1); err != nil {
		t.Fatalf("signal self: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !delivered && time.Now().Before(deadline) {
		if err := drv.Once(); err != nil {
			t.Fatalf("once: %v", err)
		}
	}
	if !delivered {
		t.Error("signal was never dispatched to the armed event")
	}
}

func TestExplicitRendezvousOrderedJoin(t *testing.T) {
	drv := newTestDriver(t)
	rv := NewExplicitRendezvous(drv, true)

	e1 := Event0{se: rv.Add(1)}
	e2 := Event0{se: rv.Add(2)}
	e1.Trigger()
	e2.Trigger()

	first, ok := rv.Join()
	if !ok || first != 1 {
		t.Errorf("first join = (%d,%v), want (1,true)", first, ok)
	}
	second, ok := rv.Join()
	if !ok || second != 2 {
		t.Errorf("second join = (%d,%v), want (2,true)", second, ok)
	}
	if _, ok := rv.Join(); ok {
		t.Error("third join should find nothing ready")
	}
}

func TestRendezvousClearCancelsCascade(t *testing.T) {
	drv := newTestDriver(t)
	rv := NewGatherRendezvous(drv, true)

	e := MakeEvent0(rv, 0)
	c := &testClosure{}
	if err := rv.block(c, 0); err != nil {
		t.Fatalf("block: %v", err)
	}

	rv.Clear()

	if !e.Empty() {
		t.Error("Clear should cancel every still-armed event")
	}
	if !rv.queued() {
		t.Error("Clear should wake the parked closure so it observes emptiness")
	}
}
