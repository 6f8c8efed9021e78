//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - Linux epoll implementation.

package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// epollReactor implements EventReactor using Linux epoll, level-triggered.
// Level-triggered (no EPOLLET) matches the driver's re-arm-after-trigger
// contract: a fd left registered with an unconsumed direction keeps firing
// every Poll until the driver clears that direction's bit.
type epollReactor struct {
	epfd int
	mu   sync.Mutex
	cbs  map[uintptr]FDCallback
}

// NewReactor creates a new epoll-backed EventReactor.
func NewReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollReactor{
		epfd: epfd,
		cbs:  make(map[uintptr]FDCallback),
	}, nil
}

func toEpollEvents(events FDEventType) uint32 {
	var e uint32
	if events&EventRead != 0 {
		e |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

// Register adds or updates interest for fd.
func (r *epollReactor) Register(fd uintptr, events FDEventType, cb FDCallback) error {
	ev := unix.EpollEvent{Events: toEpollEvents(events), Fd: int32(fd)}

	r.mu.Lock()
	_, known := r.cbs[fd]
	r.cbs[fd] = cb
	r.mu.Unlock()

	op := unix.EPOLL_CTL_ADD
	if known {
		op = unix.EPOLL_CTL_MOD
	}
	if err := unix.EpollCtl(r.epfd, op, int(fd), &ev); err != nil {
		return fmt.Errorf("epoll ctl: %w", err)
	}
	return nil
}

// Unregister removes fd from the epoll interest set.
func (r *epollReactor) Unregister(fd uintptr) error {
	r.mu.Lock()
	_, known := r.cbs[fd]
	delete(r.cbs, fd)
	r.mu.Unlock()
	if !known {
		return nil
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// Poll blocks up to timeoutMs (negative blocks indefinitely).
func (r *epollReactor) Poll(timeoutMs int) error {
	const maxEvents = 128
	var events [maxEvents]unix.EpollEvent

	n, err := unix.EpollWait(r.epfd, events[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil // interrupted by signal, normal
		}
		return fmt.Errorf("epoll wait: %w", err)
	}

	for i := 0; i < n; i++ {
		ev := events[i]
		fd := uintptr(ev.Fd)

		r.mu.Lock()
		cb, ok := r.cbs[fd]
		r.mu.Unlock()
		if !ok {
			continue
		}

		var eventType FDEventType
		if ev.Events&unix.EPOLLIN != 0 {
			eventType |= EventRead
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			eventType |= EventWrite
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			eventType |= EventError
		}

		cb(fd, eventType)
	}

	return nil
}

// Close releases the epoll file descriptor.
func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}
