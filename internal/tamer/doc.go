// File: internal/tamer/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package tamer implements a cooperative, single-threaded event-driven
// runtime: rendezvous-based completion tokens, a closure activation
// protocol for suspending and resuming cooperative tasks, and a driver
// that multiplexes timers, fd readiness, signals, and immediate callbacks
// into a single per-turn schedule.
//
// There is no locking in the scheduling core. Events, rendezvous, timers
// and the Driver's own tables are touched from exactly one goroutine: the
// one running the Driver's Loop or Once. Signal delivery arrives from the
// Go runtime's own signal-forwarding goroutine and is handed off through
// atomic flags only. The auxiliary Metrics, DriverConfig and DebugProbes
// types guard their state with a mutex so other goroutines can read them.
package tamer
