//go:build linux
// +build linux

// File: internal/tamer/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// epoll is Linux-only, so the only platform probe worth exposing here is
// the CPU count the reactor's fd table is sized against.

package tamer

import "runtime"

// RegisterPlatformProbes sets Linux-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
