// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral event reactor interface for fd-readiness multiplexing.

package reactor

import "errors"

// ErrUnsupported is returned by NewReactor on platforms with no backend.
var ErrUnsupported = errors.New("reactor: this platform is not supported")

// FDEventType is a bitmask of readiness directions.
type FDEventType uint8

const (
	EventRead FDEventType = 1 << iota
	EventWrite
	EventError
)

// FDCallback is invoked with the fd and the readiness directions observed.
type FDCallback func(fd uintptr, events FDEventType)

// EventReactor multiplexes readiness across registered file descriptors.
// One reactor instance backs one driver; Register/Unregister may be called
// from within a callback invoked by Poll.
type EventReactor interface {
	// Register starts watching fd for the given directions, invoking cb
	// on readiness. A second Register call for the same fd replaces the
	// interest set and callback (Modify semantics).
	Register(fd uintptr, events FDEventType, cb FDCallback) error

	// Unregister stops watching fd entirely.
	Unregister(fd uintptr) error

	// Poll blocks up to timeoutMs (negative blocks indefinitely) and
	// invokes the registered callbacks for any ready fd. timeoutMs=0
	// polls without blocking.
	Poll(timeoutMs int) error

	// Close releases the reactor's backing resources.
	Close() error
}
