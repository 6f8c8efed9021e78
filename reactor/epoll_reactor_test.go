//go:build linux
// +build linux

// File: reactor/epoll_reactor_test.go
// Author: momentics <momentics@gmail.com>

package reactor

import (
	"os"
	"testing"
	"time"
)

func TestReactorFiresOnReadableFD(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	react, err := NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer react.Close()

	var got FDEventType
	fired := false
	err = react.Register(r.Fd(), EventRead, func(fd uintptr, events FDEventType) {
		fired = true
		got = events
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := react.Poll(1000); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !fired {
		t.Fatal("callback did not fire for a readable fd")
	}
	if got&EventRead == 0 {
		t.Errorf("events = %v, want EventRead set", got)
	}
}

func TestReactorPollTimesOutWithNoReadyFD(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	react, err := NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer react.Close()

	fired := false
	if err := react.Register(r.Fd(), EventRead, func(uintptr, FDEventType) { fired = true }); err != nil {
		t.Fatalf("register: %v", err)
	}

	start := time.Now()
	if err := react.Poll(50); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if fired {
		t.Fatal("callback fired with nothing written to the pipe")
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Errorf("poll returned too quickly for a 50ms timeout: %v", time.Since(start))
	}
}

func TestReactorUnregisterStopsDelivery(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	react, err := NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer react.Close()

	fired := false
	if err := react.Register(r.Fd(), EventRead, func(uintptr, FDEventType) { fired = true }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := react.Unregister(r.Fd()); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := react.Poll(50); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if fired {
		t.Fatal("callback fired after Unregister")
	}
}
