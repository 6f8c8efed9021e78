//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms. The tamer driver's signal
// self-pipe trampoline and epoll readiness are POSIX/Linux constructs;
// non-Linux targets get no reactor backend, matching the original tamer's
// POSIX-only scope.

package reactor

// NewReactor returns ErrUnsupported on any non-Linux platform.
func NewReactor() (EventReactor, error) {
	return nil, ErrUnsupported
}
