// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the platform-neutral fd-readiness multiplexer
// consumed by the tamer driver's fd-event table (see internal/tamer).
// Linux is backed by epoll(7); other platforms get a stub that reports
// ErrUnsupported, matching the original tamer's POSIX-only scope.
package reactor
