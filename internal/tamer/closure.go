// File: internal/tamer/closure.go
// Author: momentics <momentics@gmail.com>
//
// Closure activation protocol: the contract by which a suspended
// cooperative task registers itself against a rendezvous and is re-entered
// at a recorded resumption point once the rendezvous has a ready event.
//
// The original tamer generates this state machine from a source-to-source
// preprocessor over annotated procedures. This runtime drops the
// preprocessor and keeps only the contract: a task is anything that can be
// reentered and knows where it left off.

package tamer

// Closure is a suspended cooperative task. Activate is called exactly once
// per resumption and must dispatch on the closure's own stored position
// (typically via a switch statement, hand-written or generated).
type Closure interface {
	Activate()
}

// DebugClosure additionally records where it last blocked, mirroring the
// TAMER_DEBUG build's tamer_debug_closure. Production closures need not
// implement it.
type DebugClosure interface {
	Closure
	SetBlockSite(file string, line int)
}

// BaseClosure is embeddable scaffolding for hand-written state machines: it
// carries the resumption position tamer's generated code would otherwise
// store on the closure struct itself.
type BaseClosure struct {
	Position uint
}

// setPosition implements closurePosition, letting rendezvous.block stash
// the resumption tag without a type switch.
func (c *BaseClosure) setPosition(p uint) {
	c.Position = p
}

// BaseDebugClosure additionally tracks the source location of the last
// block call, matching tamer_debug_closure's tamer_blocked_file_/line_.
type BaseDebugClosure struct {
	BaseClosure
	BlockedFile string
	BlockedLine int
}

// SetBlockSite implements DebugClosure.
func (c *BaseDebugClosure) SetBlockSite(file string, line int) {
	c.BlockedFile = file
	c.BlockedLine = line
}

// ClosureGuard deletes the owned closure unless explicitly Disarm()ed,
// mirroring the generated code's heap-allocated task guard: a task that
// exits early (panics, returns before completion) still gets cleaned up.
// Since Go closures are garbage collected, ClosureGuard's only real job is
// running an early-exit cleanup hook (e.g. clearing an owned rendezvous)
// exactly once.
type ClosureGuard struct {
	cleanup func()
	live    bool
}

// NewClosureGuard returns a guard that runs cleanup on Release only if
// Disarm was never called — i.e. only on the early-exit path.
func NewClosureGuard(cleanup func()) *ClosureGuard {
	return &ClosureGuard{cleanup: cleanup, live: true}
}

// Disarm marks normal completion: the generated code calls this right
// before returning from a task that ran to completion.
func (g *ClosureGuard) Disarm() {
	g.live = false
}

// Release runs the cleanup hook if the guard is still armed (early exit).
// Idempotent.
func (g *ClosureGuard) Release() {
	if g.live {
		g.live = false
		if g.cleanup != nil {
			g.cleanup()
		}
	}
}
