// File: internal/tamer/errors.go
// Author: momentics <momentics@gmail.com>
//
// Error definitions for the tamer runtime.

package tamer

import "errors"

var (
	// ErrRendezvousOccupied is returned by block when a task is already
	// parked on the target rendezvous. A generated task never legitimately
	// triggers this; it indicates a programmer error.
	ErrRendezvousOccupied = errors.New("tamer: rendezvous already has a blocked closure")

	// ErrEventAlreadyArmed names the error of initializing a SimpleEvent
	// that is already linked to a rendezvous. No function in this package
	// returns it: arming does not check for an existing link.
	ErrEventAlreadyArmed = errors.New("tamer: event already armed")

	// ErrDriverClosed is returned by driver operations attempted after
	// Close.
	ErrDriverClosed = errors.New("tamer: driver is closed")

	// ErrPollFailed wraps a fatal, non-EINTR error from the readiness
	// multiplexer, surfaced to the caller of Once/Loop.
	ErrPollFailed = errors.New("tamer: readiness poll failed")

	// ErrSignalOutOfRange is returned by AtSignal for signal numbers
	// outside the fixed signal table.
	ErrSignalOutOfRange = errors.New("tamer: signal number out of range")
)
