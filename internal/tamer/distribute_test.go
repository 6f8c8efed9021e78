// File: internal/tamer/distribute_test.go
// Author: momentics <momentics@gmail.com>

package tamer

import "testing"

func TestBind1FixesTrailingSlot(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv := NewExplicitRendezvous(drv, true)
	var got int
	inner := MakeEvent1[int](rv, 9, &got)

	bound := Bind1(inner, 99)
	bound.Trigger()

	if got != 99 {
		t.Errorf("got = %d, want 99", got)
	}
	id, ok := rv.Join()
	if !ok || id != 9 {
		t.Errorf("join = (%d,%v), want (9,true)", id, ok)
	}
}

func TestDistributeEventBroadcastsToAllTargets(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv1 := NewGatherRendezvous(drv, true)
	rv2 := NewGatherRendezvous(drv, true)
	var got1, got2 string
	e1 := MakeEvent1[string](rv1, 0, &got1)
	e2 := MakeEvent1[string](rv2, 0, &got2)

	fanout := DistributeEvent(e1, e2)
	fanout.Trigger("hello")

	if got1 != "hello" || got2 != "hello" {
		t.Errorf("got1=%q got2=%q, want both hello", got1, got2)
	}
}

func TestDistributeTriggersEveryTarget(t *testing.T) {
	drv, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	defer drv.Close()

	rv1 := NewGatherRendezvous(drv, true)
	rv2 := NewGatherRendezvous(drv, true)
	var got1, got2 int
	e1 := MakeEvent1[int](rv1, 0, &got1)
	e2 := MakeEvent1[int](rv2, 0, &got2)

	Distribute(7, e1, e2)

	if got1 != 7 || got2 != 7 {
		t.Errorf("got1=%d got2=%d, want both 7", got1, got2)
	}
}
