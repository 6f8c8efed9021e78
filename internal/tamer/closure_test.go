// File: internal/tamer/closure_test.go
// Author: momentics <momentics@gmail.com>

package tamer

import "testing"

func TestClosureGuardRunsCleanupOnEarlyExit(t *testing.T) {
	ran := false
	g := NewClosureGuard(func() { ran = true })
	g.Release()
	if !ran {
		t.Error("Release on an armed guard should run cleanup")
	}
}

func TestClosureGuardSkipsCleanupAfterDisarm(t *testing.T) {
	ran := false
	g := NewClosureGuard(func() { ran = true })
	g.Disarm()
	g.Release()
	if ran {
		t.Error("Release after Disarm should not run cleanup")
	}
}

func TestClosureGuardReleaseIsIdempotent(t *testing.T) {
	count := 0
	g := NewClosureGuard(func() { count++ })
	g.Release()
	g.Release()
	if count != 1 {
		t.Errorf("cleanup ran %d times, want 1", count)
	}
}

func TestBaseClosureSetPosition(t *testing.T) {
	c := &BaseClosure{}
	var p closurePosition = c
	p.setPosition(3)
	if c.Position != 3 {
		t.Errorf("Position = %d, want 3", c.Position)
	}
}

func TestBaseDebugClosureSetBlockSite(t *testing.T) {
	c := &BaseDebugClosure{}
	c.SetBlockSite("foo.go", 42)
	if c.BlockedFile != "foo.go" || c.BlockedLine != 42 {
		t.Errorf("block site = (%s,%d), want (foo.go,42)", c.BlockedFile, c.BlockedLine)
	}
	// BaseDebugClosure embeds BaseClosure, so it also satisfies
	// closurePosition via promotion without redeclaring setPosition.
	var p closurePosition = c
	p.setPosition(5)
	if c.Position != 5 {
		t.Errorf("Position = %d, want 5", c.Position)
	}
}
